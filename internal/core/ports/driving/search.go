package driving

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// SearchService ranks chunks against a query.
type SearchService interface {
	// Search returns ranked results across all stored documents.
	// An empty store or a query with no matches yields an empty slice,
	// never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
