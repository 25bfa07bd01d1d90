package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/adapters/driven/embedding/hash"
	"github.com/doclens/doclens/internal/adapters/driven/storage/memory"
	"github.com/doclens/doclens/internal/chunker"
	"github.com/doclens/doclens/internal/core/domain"
)

func ingestFixture(t *testing.T, store *memory.DocumentStore, filename, text string) *domain.Document {
	t.Helper()
	splitter, err := chunker.New(chunker.WithChunkSize(500), chunker.WithOverlap(50))
	require.NoError(t, err)
	svc := NewDocumentService(store, passthroughExtractor{}, splitter, nil)
	doc, err := svc.Ingest(context.Background(), filename, []byte(text), "text/plain")
	require.NoError(t, err)
	return doc
}

func TestSearch_InvalidMaxResults(t *testing.T) {
	svc := NewSearchService(memory.NewDocumentStore(), nil)

	_, err := svc.Search(context.Background(), "query", domain.SearchOptions{MaxResults: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSearch_InvalidStrategy(t *testing.T) {
	svc := NewSearchService(memory.NewDocumentStore(), nil)

	_, err := svc.Search(context.Background(), "query", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   "bm25",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSearch_EmptyStoreReturnsEmpty(t *testing.T) {
	svc := NewSearchService(memory.NewDocumentStore(), nil)

	results, err := svc.Search(context.Background(), "anything", domain.SearchOptions{MaxResults: 5})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQueryReturnsEmpty(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "doc.txt", "some indexed content here")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "   ", domain.SearchOptions{MaxResults: 5})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_KeywordRanking(t *testing.T) {
	store := memory.NewDocumentStore()
	apple := ingestFixture(t, store, "apple.txt", "A classic apple pie recipe with butter crust.")
	ingestFixture(t, store, "banana.txt", "A moist banana bread recipe with walnuts.")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "apple", domain.SearchOptions{
		MaxResults: 10,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, apple.ID, results[0].Document.ID,
		"the document containing the query term must rank first")
	for _, r := range results {
		assert.NotEqual(t, "banana.txt", r.Document.Filename,
			"chunks without any query term must not appear")
	}
}

func TestSearch_VerbatimBonus(t *testing.T) {
	store := memory.NewDocumentStore()
	exact := ingestFixture(t, store, "exact.txt", "How to configure apple pie ovens properly.")
	ingestFixture(t, store, "partial.txt", "This mentions apple once and pie separately elsewhere maybe.")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "apple pie", domain.SearchOptions{
		MaxResults: 10,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, exact.ID, results[0].Document.ID)
	// Both tokens plus the verbatim phrase: 2 + 3.
	assert.Equal(t, 5.0, results[0].Score)
	// Both tokens, no verbatim phrase.
	assert.Equal(t, 2.0, results[1].Score)
}

func TestSearch_ShortTokensDropped(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "doc.txt", "An ox is an animal.")
	svc := NewSearchService(store, nil)

	// "ox" and "an" are too short to count as tokens; only the verbatim
	// phrase match can score.
	results, err := svc.Search(context.Background(), "zz yy", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_MinRelevanceFilters(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "weak.txt", "Mentions searching once in passing.")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "searching", domain.SearchOptions{
		MaxResults:   5,
		MinRelevance: 2.0,
		Strategy:     domain.StrategyKeyword,
	})
	require.NoError(t, err)
	assert.Empty(t, results, "a single-token match scores 1, below the threshold")
}

func TestSearch_MaxResultsTruncates(t *testing.T) {
	store := memory.NewDocumentStore()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		ingestFixture(t, store, name, "every document mentions searching here")
	}
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "searching", domain.SearchOptions{
		MaxResults: 2,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_StableTieOrder(t *testing.T) {
	store := memory.NewDocumentStore()
	first := ingestFixture(t, store, "first.txt", "identical searching content")
	second := ingestFixture(t, store, "second.txt", "identical searching content")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "searching", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Equal scores keep insertion order.
	assert.Equal(t, first.ID, results[0].Document.ID)
	assert.Equal(t, second.ID, results[1].Document.ID)
}

func TestSearch_ScoresSortedDescending(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "one.txt", "searching")
	ingestFixture(t, store, "two.txt", "searching and searching again with indexing")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "searching indexing", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategyKeyword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearch_SemanticStrategy(t *testing.T) {
	store := memory.NewDocumentStore()
	embedder := hash.New(256)
	splitter, err := chunker.New(chunker.WithChunkSize(500), chunker.WithOverlap(50))
	require.NoError(t, err)
	docSvc := NewDocumentService(store, passthroughExtractor{}, splitter, embedder)
	ctx := context.Background()

	apple, err := docSvc.Ingest(ctx, "apple.txt", []byte("apple pie recipe with cinnamon crust"), "text/plain")
	require.NoError(t, err)
	_, err = docSvc.Ingest(ctx, "banana.txt", []byte("banana bread loaf with walnuts"), "text/plain")
	require.NoError(t, err)

	svc := NewSearchService(store, embedder)

	results, err := svc.Search(ctx, "apple pie recipe", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategySemantic,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, apple.ID, results[0].Document.ID)
	assert.LessOrEqual(t, results[0].Score, 1.0)
}

func TestSearch_SemanticWithoutEmbedderReturnsEmpty(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "doc.txt", "apple pie recipe")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "apple", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategySemantic,
	})
	require.NoError(t, err)
	assert.Empty(t, results, "semantic scoring needs embeddings on both sides")
}

func TestSearch_HybridDegradesToKeyword(t *testing.T) {
	store := memory.NewDocumentStore()
	ingestFixture(t, store, "doc.txt", "apple pie recipe with apple filling")
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "apple pie", domain.SearchOptions{
		MaxResults: 5,
		Strategy:   domain.StrategyHybrid,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 2 tokens + verbatim bonus, normalised: 5 / (5 + 3).
	assert.InDelta(t, 0.625, results[0].Score, 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	// Opposed vectors clamp to zero rather than going negative.
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
}
