// Package memory provides in-memory storage adapters.
package memory

import (
	"context"
	"sync"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Mutations hold the write lock for their full duration, so readers never
// observe a partially stored document.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk
	chunkDocs map[string]string
	order     []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
		chunkDocs: make(map[string]string),
	}
}

// SaveDocument atomically stores a document with its chunks.
// The document and chunks must be fully constructed before the call.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}

	s.documents[doc.ID] = *doc
	s.chunks[doc.ID] = chunks
	for _, chunk := range chunks {
		s.chunkDocs[chunk.ID] = doc.ID
	}

	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetChunks retrieves a document's chunks in creation order.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.documents[documentID]; !ok {
		return nil, domain.ErrNotFound
	}
	chunks := s.chunks[documentID]
	out := make([]domain.Chunk, len(chunks))
	copy(out, chunks)
	return out, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docID, ok := s.chunkDocs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, chunk := range s.chunks[docID] {
		if chunk.ID == id {
			return &chunk, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateSummary sets the summary annotation on a document.
func (s *DocumentStore) UpdateSummary(_ context.Context, id, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Summary = summary
	s.documents[id] = doc
	return nil
}

// LinkRelated records related-chunk references on a chunk.
func (s *DocumentStore) LinkRelated(_ context.Context, chunkID string, relatedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docID, ok := s.chunkDocs[chunkID]
	if !ok {
		return domain.ErrNotFound
	}
	chunks := s.chunks[docID]
	for i := range chunks {
		if chunks[i].ID == chunkID {
			chunks[i].RelatedIDs = append(chunks[i].RelatedIDs, relatedIDs...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteDocument removes a document and its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return false, nil
	}

	for _, chunk := range s.chunks[id] {
		delete(s.chunkDocs, chunk.ID)
	}
	delete(s.documents, id)
	delete(s.chunks, id)

	for i, docID := range s.order {
		if docID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true, nil
}

// Clear removes every document and chunk.
func (s *DocumentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make(map[string]domain.Document)
	s.chunks = make(map[string][]domain.Chunk)
	s.chunkDocs = make(map[string]string)
	s.order = nil
	return nil
}

// ListDocuments returns all documents in insertion order.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.documents[id])
	}
	return result, nil
}
