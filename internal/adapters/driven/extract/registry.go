package extract

import (
	"context"
	"sync"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Registry selects an extractor by declared content type.
// When several extractors claim the same type the highest priority wins.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
	fallback   driven.Extractor
}

// NewRegistry creates a registry with the default extractors registered.
func NewRegistry() *Registry {
	r := &Registry{fallback: NewPlaintext()}
	r.Register(NewPlaintext())
	r.Register(NewMarkdown())
	return r
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
}

// ForContentType returns the best extractor for the content type, falling
// back to the plain text extractor when nothing claims it.
func (r *Registry) ForContentType(contentType string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.Extractor
	for _, e := range r.extractors {
		if !supports(e, contentType) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	if best == nil {
		return r.fallback
	}
	return best
}

// Extract runs the selected extractor for the content type.
func (r *Registry) Extract(ctx context.Context, data []byte, contentType string) (*driven.Extraction, error) {
	return r.ForContentType(contentType).Extract(ctx, data, contentType)
}

func supports(e driven.Extractor, contentType string) bool {
	for _, ct := range e.SupportedContentTypes() {
		if ct == contentType {
			return true
		}
	}
	return false
}
