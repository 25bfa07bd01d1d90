package driving

import "context"

// AskOptions configures a question/answer round trip.
type AskOptions struct {
	// TokenBudget caps the estimated size of the assembled context.
	TokenBudget int

	// MaxResults caps the number of chunks retrieved for context.
	MaxResults int
}

// AskResult is the outcome of a question/answer round trip.
type AskResult struct {
	// Answer is the generated (or cached) response text.
	Answer string

	// FromCache is true when the answer was served from the response cache.
	FromCache bool

	// ContextChunkIDs lists the chunks included in the prompt context.
	ContextChunkIDs []string
}

// AskService answers questions grounded in the indexed documents.
type AskService interface {
	// Ask retrieves context for the query, checks the response cache, and
	// invokes the generation collaborator on a miss.
	Ask(ctx context.Context, query string, opts AskOptions) (*AskResult, error)
}
