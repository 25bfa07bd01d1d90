package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.Extractor = (*Markdown)(nil)

// Markdown handles markdown uploads. Formatting noise is stripped while
// the structural markers the chunk classifier relies on (heading hashes,
// list bullets, code fences, table pipes) are preserved.
type Markdown struct{}

// NewMarkdown creates a new markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// SupportedContentTypes returns the MIME types this extractor handles.
func (e *Markdown) SupportedContentTypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (e *Markdown) Priority() int {
	return 50 // Generic MIME extractor, higher than plaintext
}

var (
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	boldPattern  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emPattern    = regexp.MustCompile(`(^|[^*])\*([^*]+)\*`)
)

// Extract converts markdown bytes to indexable text.
func (e *Markdown) Extract(_ context.Context, data []byte, _ string) (*driven.Extraction, error) {
	text := Sanitise(data)

	// Images become their alt text so the span still carries a trace of
	// the figure for retrieval.
	text = imagePattern.ReplaceAllString(text, "[image: $1]")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = emPattern.ReplaceAllString(text, "$1$2")

	return &driven.Extraction{Text: strings.TrimSpace(text) + "\n"}, nil
}
