// Package tiktoken provides an exact token counter backed by the
// tiktoken BPE vocabularies. It substitutes for the character heuristic
// behind the same TokenCounter port.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// DefaultModel selects the encoding when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Ensure Counter implements the interface.
var _ driven.TokenCounter = (*Counter)(nil)

// Counter counts tokens with the encoding of a specific model.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// New creates a counter for the given model's encoding.
func New(model string) (*Counter, error) {
	if model == "" {
		model = DefaultModel
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("encoding for model %s: %w", model, err)
	}

	return &Counter{encoding: enc}, nil
}

// Count returns the exact token count for text.
func (c *Counter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
