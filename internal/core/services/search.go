package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// verbatimBonus is added to a chunk's keyword score when the whole query
// appears as a substring of its content.
const verbatimBonus = 3.0

// DefaultMaxResults caps results when the caller passes no limit.
const DefaultMaxResults = 5

// DefaultKeywordWeight is the keyword share of the hybrid blend.
const DefaultKeywordWeight = 0.5

// SearchService ranks chunks against a query by keyword overlap,
// embedding similarity, or a blend of both.
type SearchService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a search service.
// The embedder is optional (can be nil); without it the semantic component
// contributes nothing and ranking degrades to keyword overlap.
func NewSearchService(store driven.DocumentStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		store:    store,
		embedder: embedder,
	}
}

// Search scans every chunk of every stored document and returns ranked
// results. An empty store or a query with no matches yields an empty
// slice, never an error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	if opts.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive, got %d",
			domain.ErrInvalidConfig, opts.MaxResults)
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = domain.StrategyHybrid
	}
	if !strategy.IsValid() {
		return nil, fmt.Errorf("%w: unknown ranking strategy %q", domain.ErrInvalidConfig, strategy)
	}

	keywordWeight := opts.KeywordWeight
	if strategy == domain.StrategyHybrid && keywordWeight == 0 {
		keywordWeight = DefaultKeywordWeight
	}
	keywordWeight = clamp01(keywordWeight)

	query = strings.TrimSpace(query)
	tokens := queryTokens(query)
	logger.Debug("Strategy: %s, tokens: %v", strategy, tokens)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	queryEmbedding := s.queryEmbedding(ctx, query, strategy)

	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	results := make([]domain.SearchResult, 0)
	queryLower := strings.ToLower(query)

	// Documents arrive in insertion order and chunks in creation order,
	// so the stable sort below keeps ties deterministic.
	for _, doc := range docs {
		chunks, err := s.store.GetChunks(ctx, doc.ID)
		if err != nil {
			continue
		}
		for _, chunk := range chunks {
			score := s.scoreChunk(chunk, queryLower, tokens, queryEmbedding, strategy, keywordWeight)
			if score <= 0 {
				continue
			}
			if opts.MinRelevance > 0 && score < opts.MinRelevance {
				continue
			}
			results = append(results, domain.SearchResult{
				Document: doc,
				Chunk:    chunk,
				Score:    score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	logger.Info("Results: %d", len(results))
	return results, nil
}

// queryEmbedding embeds the query when the strategy has a semantic
// component and an embedder is configured.
func (s *SearchService) queryEmbedding(
	ctx context.Context, query string, strategy domain.RankingStrategy,
) []float32 {
	if !strategy.RequiresEmbedding() || s.embedder == nil {
		return nil
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v (keyword scoring only)", err)
		return nil
	}
	return embedding
}

// scoreChunk computes the relevance score for one chunk.
//
// The keyword score counts query tokens appearing as substrings of the
// lowercased content, plus the verbatim bonus when the whole query
// matches. Hybrid blending normalises it to [0,1] via s/(s+bonus) before
// weighting; when either side lacks an embedding the normalised keyword
// score stands alone.
func (s *SearchService) scoreChunk(
	chunk domain.Chunk,
	queryLower string,
	tokens []string,
	queryEmbedding []float32,
	strategy domain.RankingStrategy,
	keywordWeight float64,
) float64 {
	contentLower := strings.ToLower(chunk.Content)

	var keyword float64
	for _, token := range tokens {
		if strings.Contains(contentLower, token) {
			keyword++
		}
	}
	if queryLower != "" && strings.Contains(contentLower, queryLower) {
		keyword += verbatimBonus
	}

	canCosine := len(queryEmbedding) > 0 && len(chunk.Embedding) == len(queryEmbedding)

	switch strategy {
	case domain.StrategyKeyword:
		return keyword

	case domain.StrategySemantic:
		if !canCosine {
			return 0
		}
		return cosineSimilarity(queryEmbedding, chunk.Embedding)

	default: // hybrid
		normalised := keyword / (keyword + verbatimBonus)
		if !canCosine {
			return normalised
		}
		semantic := cosineSimilarity(queryEmbedding, chunk.Embedding)
		return keywordWeight*normalised + (1-keywordWeight)*semantic
	}
}

// queryTokens lowercases and splits the query, dropping short tokens.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// cosineSimilarity returns the cosine similarity of two equal-length
// vectors, clamped to [0,1].
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(cos)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
