package services

import "github.com/doclens/doclens/internal/core/ports/driven"

// Ensure HeuristicCounter implements the interface.
var _ driven.TokenCounter = (*HeuristicCounter)(nil)

// HeuristicCounter estimates tokens as ceil(characters / 4).
// It is deliberately crude; swap in the tiktoken adapter for exact counts.
type HeuristicCounter struct{}

// charsPerToken is the assumed average characters per token.
const charsPerToken = 4

// Count returns the estimated token count for text.
func (HeuristicCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
