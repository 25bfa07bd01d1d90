package driven

import "context"

// GenerationService produces text from a prompt.
// It is the outbound boundary to the model provider; the engine passes
// provider errors through unchanged and never retries.
type GenerationService interface {
	// Generate returns the model output for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier used for cache keying.
	Model() string

	// Provider returns the provider identifier used for cache keying.
	Provider() string
}
