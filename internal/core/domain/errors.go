package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates invalid chunking or search parameters.
	// This is a programmer error: fatal to the call, never retried.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExtractionFailed indicates the extraction collaborator failed.
	// Callers recover locally by falling back to plain text; it is never
	// fatal to ingestion.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrGenerationFailed indicates the generation collaborator failed.
	// The engine reports it to the caller as-is and never retries.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	// Semantic search degrades to keyword-only without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
