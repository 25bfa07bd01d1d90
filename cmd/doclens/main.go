// Command doclens is a document question answering engine. It ingests
// files, indexes them as chunks and answers questions grounded in the
// retrieved content.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/doclens/doclens/internal/adapters/driven/embedding/hash"
	openaiembed "github.com/doclens/doclens/internal/adapters/driven/embedding/openai"
	"github.com/doclens/doclens/internal/adapters/driven/extract"
	openaillm "github.com/doclens/doclens/internal/adapters/driven/llm/openai"
	"github.com/doclens/doclens/internal/adapters/driven/storage/memory"
	"github.com/doclens/doclens/internal/adapters/driven/tokencount/tiktoken"
	"github.com/doclens/doclens/internal/adapters/driving/cli"
	"github.com/doclens/doclens/internal/cache"
	"github.com/doclens/doclens/internal/chunker"
	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/services"
	"github.com/doclens/doclens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("DOCLENS_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	splitter, err := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		return fmt.Errorf("configure chunker: %w", err)
	}

	store := memory.NewDocumentStore()
	registry := extract.NewRegistry()

	embedder, generator := buildProviders(cfg)

	respCache := cache.New(
		cache.WithTTL(cfg.TTL()),
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	respCache.StartSweeper(ctx, 5*time.Minute)

	counter := buildTokenCounter(cfg)

	docSvc := services.NewDocumentService(store, registry, splitter, embedder)
	searchSvc := services.NewSearchService(store, embedder)
	contextSvc := services.NewContextService(counter)
	askSvc := services.NewAskService(searchSvc, contextSvc, respCache, generator)

	cli.SetVersion(version)
	cli.SetDefaults(cli.Defaults{
		MaxResults:    cfg.MaxResults,
		MinRelevance:  cfg.MinRelevance,
		Strategy:      cfg.Strategy,
		KeywordWeight: cfg.HybridKeywordWeight,
	})
	cli.SetServices(docSvc, searchSvc, askSvc, respCache)

	return cli.Execute()
}

// buildProviders constructs the OpenAI adapters when an API key is
// present. Without one the engine runs fully offline: hashed embeddings
// for semantic ranking and no generation service.
func buildProviders(cfg *config.Config) (driven.EmbeddingService, driven.GenerationService) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Info("OPENAI_API_KEY not set; using hashed embeddings, ask disabled")
		return hash.New(hash.DefaultDimension), nil
	}

	embedder, err := openaiembed.New(apiKey, cfg.OpenAI.EmbeddingModel)
	if err != nil {
		logger.Warn("embedding provider unavailable (%v); using hashed embeddings", err)
		return hash.New(hash.DefaultDimension), nil
	}

	generator, err := openaillm.New(apiKey, cfg.OpenAI.Model)
	if err != nil {
		logger.Warn("generation provider unavailable: %v", err)
		return embedder, nil
	}

	return embedder, generator
}

// buildTokenCounter prefers a real tokenizer for the configured model,
// falling back to the character heuristic.
func buildTokenCounter(cfg *config.Config) driven.TokenCounter {
	model := cfg.OpenAI.Model
	if model == "" {
		model = openaillm.DefaultModel
	}

	counter, err := tiktoken.New(model)
	if err != nil {
		logger.Debug("tokenizer unavailable for %s (%v); using heuristic", model, err)
		return services.HeuristicCounter{}
	}
	return counter
}
