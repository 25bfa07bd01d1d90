// Package hash provides a deterministic local embedding service.
// It hashes terms into a fixed-size bag-of-words vector. The vectors carry
// no semantics beyond term overlap, but they are free, offline and
// deterministic, which keeps semantic search usable without an API key.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// DefaultDimension is the default vector size.
const DefaultDimension = 256

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Embedder is a hashed bag-of-words embedding service.
type Embedder struct {
	dim int
}

// New creates a hashed embedder with the given dimensionality.
// Non-positive dimensions fall back to the default.
func New(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Embedder{dim: dim}
}

// Embed generates an L2-normalised term-frequency vector for the text.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)

	for _, term := range strings.Fields(strings.ToLower(text)) {
		term = strings.Trim(term, ".,;:!?\"'()[]{}")
		if len(term) <= 2 {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(term))
		vec[h.Sum32()%uint32(e.dim)]++
	}

	l2normalise(vec)
	return vec, nil
}

// Dimension returns the embedding dimensionality.
func (e *Embedder) Dimension() int {
	return e.dim
}

// l2normalise scales a vector to unit length.
func l2normalise(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
