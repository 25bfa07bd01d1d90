// Package chunker provides boundary-aware text splitting.
package chunker

import (
	"fmt"
	"strings"

	"github.com/doclens/doclens/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 2000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// boundaryLookahead is how far past the naive window end the splitter
// searches for a sentence terminator before giving up on snapping.
const boundaryLookahead = 200

// Span is a contiguous region of the source text.
// Start and End are character offsets into the original input; Content is
// the trimmed substring. Offsets are kept raw so that the original text can
// be reconstructed from consecutive spans after stripping the overlap.
type Span struct {
	Start   int
	End     int
	Content string
}

// Splitter walks text in fixed-size windows, snapping each window end to
// the first sentence terminator or newline found within the lookahead.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive windows in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a splitter with the given options.
// It returns domain.ErrInvalidConfig when the window size is not positive,
// the overlap is negative, or the overlap is not smaller than the window
// size; an overlap that large would stall the window advance.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, s.chunkSize)
	}
	if s.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidConfig, s.overlap)
	}
	if s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfig, s.overlap, s.chunkSize)
	}

	return s, nil
}

// ChunkSize returns the configured window size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap width.
func (s *Splitter) Overlap() int { return s.overlap }

// Split divides text into ordered spans. Each span covers at most the
// window size plus the boundary lookahead; consecutive spans overlap by
// exactly the configured overlap except after a snapped boundary. Spans
// whose trimmed content is empty are discarded.
func (s *Splitter) Split(text string) []Span {
	if text == "" {
		return nil
	}

	textLen := len(text)
	estimated := textLen/(s.chunkSize-s.overlap) + 1
	spans := make([]Span, 0, estimated)

	start := 0
	for start < textLen {
		end := start + s.chunkSize
		if end >= textLen {
			end = textLen
		} else {
			end = snapBoundary(text, end)
		}

		content := strings.TrimSpace(text[start:end])
		if content != "" {
			spans = append(spans, Span{Start: start, End: end, Content: content})
		}

		if end >= textLen {
			break
		}

		next := end - s.overlap
		if next <= start {
			// Cannot happen with a validated configuration; guard
			// against stalling anyway.
			next = end
		}
		start = next
	}

	return spans
}

// snapBoundary searches forward from the naive end for the first sentence
// terminator or newline within the lookahead and returns the position just
// past it, or the naive end when none is found.
func snapBoundary(text string, naiveEnd int) int {
	limit := naiveEnd + boundaryLookahead
	if limit > len(text) {
		limit = len(text)
	}

	for i := naiveEnd; i < limit; i++ {
		if text[i] == '.' || text[i] == '\n' {
			return i + 1
		}
	}

	return naiveEnd
}
