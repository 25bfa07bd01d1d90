package driving

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// ContextService assembles ranked results into a token-budgeted payload.
type ContextService interface {
	// Assemble walks results in rank order, including whole chunks until
	// the budget would be exceeded. It never splits a chunk's content.
	Assemble(ctx context.Context, results []domain.SearchResult, tokenBudget int) (*domain.ContextPayload, error)
}
