// Package config loads and persists engine configuration from a TOML
// file in the doclens config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/doclens/doclens/internal/core/domain"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config is the engine configuration.
type Config struct {
	// ChunkSize is the chunk window size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// Strategy is the default ranking strategy.
	Strategy string `toml:"strategy"`

	// HybridKeywordWeight is the keyword share of the hybrid blend.
	HybridKeywordWeight float64 `toml:"hybrid_keyword_weight"`

	// MaxResults is the default result limit for searches.
	MaxResults int `toml:"max_results"`

	// MinRelevance is the default relevance threshold.
	MinRelevance float64 `toml:"min_relevance"`

	// Cache configures the response cache.
	Cache CacheConfig `toml:"cache"`

	// OpenAI configures the optional OpenAI adapters.
	OpenAI OpenAIConfig `toml:"openai"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	// TTLMillis is the entry time-to-live in milliseconds.
	TTLMillis int64 `toml:"ttl_ms"`

	// MaxEntries is the cache capacity.
	MaxEntries int `toml:"max_entries"`
}

// OpenAIConfig configures the OpenAI adapters.
// The API key is never stored in the file; it comes from the
// OPENAI_API_KEY environment variable (optionally via a .env file).
type OpenAIConfig struct {
	// Model is the chat model for generation.
	Model string `toml:"model"`

	// EmbeddingModel is the model for embeddings.
	EmbeddingModel string `toml:"embedding_model"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		ChunkSize:           2000,
		ChunkOverlap:        200,
		Strategy:            string(domain.StrategyHybrid),
		HybridKeywordWeight: 0.5,
		MaxResults:          5,
		MinRelevance:        0.3,
		Cache: CacheConfig{
			TTLMillis:  3_600_000,
			MaxEntries: 1000,
		},
		OpenAI: OpenAIConfig{},
	}
}

// TTL returns the cache TTL as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLMillis) * time.Millisecond
}

// Validate checks the configuration for programmer errors.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", domain.ErrInvalidConfig)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size)", domain.ErrInvalidConfig)
	}
	if !domain.RankingStrategy(c.Strategy).IsValid() {
		return fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidConfig, c.Strategy)
	}
	if c.HybridKeywordWeight < 0 || c.HybridKeywordWeight > 1 {
		return fmt.Errorf("%w: hybrid_keyword_weight must be in [0,1]", domain.ErrInvalidConfig)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive", domain.ErrInvalidConfig)
	}
	if c.Cache.TTLMillis <= 0 || c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("%w: cache ttl_ms and max_entries must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// Load reads the config file from configDir, applying defaults for a
// missing file. An empty configDir defaults to ~/.doclens.
func Load(configDir string) (*Config, error) {
	dir, err := resolveDir(configDir)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config file to configDir, creating the directory when
// needed. An empty configDir defaults to ~/.doclens.
func Save(configDir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir, err := resolveDir(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, FileName), data, 0600)
}

func resolveDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".doclens"), nil
}
