package services

import (
	"context"
	"fmt"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers questions grounded in the indexed documents:
// retrieve, assemble, check the cache, generate, fill the cache.
type AskService struct {
	search    driving.SearchService
	assembler driving.ContextService
	cache     driven.ResponseCache
	generator driven.GenerationService
}

// NewAskService creates an ask service.
// The cache is optional (can be nil); without it every ask hits the
// generator.
func NewAskService(
	search driving.SearchService,
	assembler driving.ContextService,
	cache driven.ResponseCache,
	generator driven.GenerationService,
) *AskService {
	return &AskService{
		search:    search,
		assembler: assembler,
		cache:     cache,
		generator: generator,
	}
}

// Ask answers a question. Generation errors are passed through unchanged;
// the engine never retries the provider.
func (s *AskService) Ask(ctx context.Context, query string, opts driving.AskOptions) (*driving.AskResult, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generation service configured", domain.ErrInvalidConfig)
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if s.cache != nil {
		if payload, ok := s.cache.Get(query, s.generator.Model(), s.generator.Provider()); ok {
			logger.Info("Cache hit for %q", query)
			return &driving.AskResult{Answer: payload, FromCache: true}, nil
		}
	}

	results, err := s.search.Search(ctx, query, domain.SearchOptions{
		MaxResults: maxResults,
		Strategy:   domain.StrategyHybrid,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	payload, err := s.assembler.Assemble(ctx, results, opts.TokenBudget)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}

	prompt := query
	if payload.Text != "" {
		prompt = payload.Text + "\n\nQuestion: " + query
	}

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	if s.cache != nil {
		s.cache.Set(query, s.generator.Model(), s.generator.Provider(), answer)
	}

	return &driving.AskResult{
		Answer:          answer,
		FromCache:       false,
		ContextChunkIDs: payload.IncludedChunkIDs,
	}, nil
}
