// Package cache provides a TTL and capacity bounded response cache.
// It memoises generation results so repeated questions skip the provider
// call entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Defaults for the cache configuration.
const (
	// DefaultTTL is how long an entry stays servable after insertion.
	DefaultTTL = time.Hour

	// DefaultMaxEntries bounds the number of stored entries.
	DefaultMaxEntries = 1000

	// DefaultMinPayloadLen is the shortest payload worth caching.
	// Shorter payloads are almost always truncated or failed generations.
	DefaultMinPayloadLen = 10

	// DefaultErrorMarker marks payloads that must never be cached.
	DefaultErrorMarker = "error:"
)

// Entry is a cached generation result.
type Entry struct {
	// Key is the opaque hash identifying the entry.
	Key string

	// Payload is the cached generation text.
	Payload string

	// CreatedAt is when the entry was inserted.
	CreatedAt time.Time

	// Model is the model identifier the payload was generated with.
	Model string

	// Provider is the provider identifier the payload was generated with.
	Provider string
}

// Stats describes the cache state.
type Stats struct {
	// Size is the current number of entries.
	Size int

	// MaxEntries is the configured capacity.
	MaxEntries int

	// TTL is the configured time-to-live.
	TTL time.Duration
}

// ResponseCache memoises generation responses keyed by query, model and
// provider. Eviction at capacity removes the earliest-inserted entry;
// insertion order is deliberately not refreshed on reads, so this is an
// approximation of LRU, not the strict policy.
type ResponseCache struct {
	mu            sync.Mutex
	entries       map[string]Entry
	order         []string
	ttl           time.Duration
	maxEntries    int
	minPayloadLen int
	errorMarker   string
	now           func() time.Time
}

// Option configures the cache.
type Option func(*ResponseCache)

// WithTTL sets the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResponseCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxEntries sets the capacity.
func WithMaxEntries(n int) Option {
	return func(c *ResponseCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithMinPayloadLen sets the minimum cacheable payload length.
func WithMinPayloadLen(n int) Option {
	return func(c *ResponseCache) {
		if n >= 0 {
			c.minPayloadLen = n
		}
	}
}

// WithErrorMarker sets the substring that disqualifies a payload.
func WithErrorMarker(marker string) Option {
	return func(c *ResponseCache) {
		c.errorMarker = marker
	}
}

// WithClock overrides the time source. Useful for testing expiry.
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a response cache with the given options.
func New(opts ...Option) *ResponseCache {
	c := &ResponseCache{
		entries:       make(map[string]Entry),
		ttl:           DefaultTTL,
		maxEntries:    DefaultMaxEntries,
		minPayloadLen: DefaultMinPayloadLen,
		errorMarker:   DefaultErrorMarker,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Key derives the deterministic cache key for a query/model/provider triple.
func Key(query, model, provider string) string {
	normalised := strings.ToLower(strings.TrimSpace(query)) + "|" + model + "|" + provider
	sum := sha256.Sum256([]byte(normalised))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached payload for the triple, or false on a miss.
// Expired entries are removed and reported as misses regardless of whether
// the periodic sweep has run.
func (c *ResponseCache) Get(query, model, provider string) (string, bool) {
	key := Key(query, model, provider)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}

	if c.now().Sub(entry.CreatedAt) > c.ttl {
		c.remove(key)
		return "", false
	}

	return entry.Payload, true
}

// Set stores a payload for the triple. Payloads shorter than the minimum
// length or containing the error marker are silently skipped so failed
// generations are never served from cache. At capacity the earliest
// inserted entry is evicted.
func (c *ResponseCache) Set(query, model, provider, payload string) {
	if len(payload) < c.minPayloadLen {
		return
	}
	if c.errorMarker != "" && strings.Contains(strings.ToLower(payload), c.errorMarker) {
		return
	}

	key := Key(query, model, provider)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		// Overwrite in place; the entry keeps its original slot in the
		// insertion order but the clock restarts.
		entry := c.entries[key]
		entry.Payload = payload
		entry.CreatedAt = c.now()
		entry.Model = model
		entry.Provider = provider
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: c.now(),
		Model:     model,
		Provider:  provider,
	}
	c.order = append(c.order, key)
}

// SweepExpired removes every TTL-expired entry and returns how many were
// removed. Best-effort housekeeping; Get re-checks expiry on its own.
func (c *ResponseCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) > c.ttl {
			c.remove(key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs SweepExpired on the given interval until ctx is done.
func (c *ResponseCache) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.SweepExpired()
			}
		}
	}()
}

// Clear removes every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	c.order = nil
}

// Stats returns the current cache state.
func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:       len(c.entries),
		MaxEntries: c.maxEntries,
		TTL:        c.ttl,
	}
}

// evictOldest removes the earliest-inserted live entry.
// Caller must hold the lock.
func (c *ResponseCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.remove(oldest)
}

// remove deletes an entry and its order slot. Caller must hold the lock.
func (c *ResponseCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
