package cli

import (
	"context"

	"github.com/doclens/doclens/internal/adapters/driven/extract"
	"github.com/doclens/doclens/internal/adapters/driven/storage/memory"
	"github.com/doclens/doclens/internal/cache"
	"github.com/doclens/doclens/internal/chunker"
	"github.com/doclens/doclens/internal/core/services"
)

// fakeGenerator stands in for a real provider in command tests.
type fakeGenerator struct {
	answer string
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.answer, nil
}

func (g *fakeGenerator) Model() string    { return "fake-model" }
func (g *fakeGenerator) Provider() string { return "fake" }

// setupTestServices wires real in-memory services behind the command
// globals and returns a cleanup func restoring the previous wiring.
func setupTestServices() func() {
	oldDocs, oldSearch, oldAsk, oldCache := documentService, searchService, askService, responseCache

	store := memory.NewDocumentStore()
	splitter, err := chunker.New(chunker.WithChunkSize(500), chunker.WithOverlap(50))
	if err != nil {
		panic(err)
	}

	docs := services.NewDocumentService(store, extract.NewRegistry(), splitter, nil)
	search := services.NewSearchService(store, nil)
	assembler := services.NewContextService(nil)
	respCache := cache.New()
	ask := services.NewAskService(search, assembler, respCache, &fakeGenerator{answer: "a generated test answer"})

	SetServices(docs, search, ask, respCache)

	return func() {
		documentService, searchService, askService, responseCache = oldDocs, oldSearch, oldAsk, oldCache
	}
}
