package driven

import "context"

// EmbeddingService generates vector representations of text.
// Implementations must return vectors of a fixed dimensionality.
type EmbeddingService interface {
	// Embed generates an embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding dimensionality.
	Dimension() int
}
