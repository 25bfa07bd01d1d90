package driving

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// DocumentService manages the document lifecycle.
type DocumentService interface {
	// Ingest extracts, chunks and indexes an uploaded file, returning the
	// stored document. Two ingestions of identical content produce two
	// distinct documents.
	Ingest(ctx context.Context, filename string, data []byte, contentType string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Chunks returns a document's chunks in creation order.
	Chunks(ctx context.Context, id string) ([]domain.Chunk, error)

	// List returns all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove deletes a document and its chunks, reporting whether it existed.
	Remove(ctx context.Context, id string) (bool, error)

	// Clear removes every document.
	Clear(ctx context.Context) error

	// Annotate sets the summary on a document.
	Annotate(ctx context.Context, id, summary string) error
}
