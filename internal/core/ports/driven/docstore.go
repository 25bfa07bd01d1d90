package driven

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// DocumentStore holds documents and their chunks.
// Backed by an in-memory store; the index does not survive a restart.
type DocumentStore interface {
	// SaveDocument atomically stores a fully constructed document together
	// with its chunks. A document never becomes visible half-built:
	// callers stage the document and every chunk before this call.
	SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves a document's chunks in creation order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// UpdateSummary sets the summary annotation on a document.
	// The summary is the only mutable document field.
	UpdateSummary(ctx context.Context, id, summary string) error

	// LinkRelated records cross-document related-chunk references.
	LinkRelated(ctx context.Context, chunkID string, relatedIDs []string) error

	// DeleteDocument removes a document and its chunks.
	// It reports whether the document existed.
	DeleteDocument(ctx context.Context, id string) (bool, error)

	// Clear removes every document and chunk.
	Clear(ctx context.Context) error

	// ListDocuments returns all documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
