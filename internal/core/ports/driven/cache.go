package driven

// ResponseCache memoises generation responses.
// Implementations decide TTL and eviction; callers treat every miss the
// same regardless of cause.
type ResponseCache interface {
	// Get returns the cached payload for the triple, or false on a miss.
	Get(query, model, provider string) (string, bool)

	// Set stores a payload for the triple. Implementations may silently
	// skip payloads that look like failed generations.
	Set(query, model, provider, payload string)
}
