// Package extract provides content-type specific text extraction.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Plaintext implements the interface.
var _ driven.Extractor = (*Plaintext)(nil)

// Plaintext handles plain text uploads. It is the fallback extractor.
type Plaintext struct{}

// NewPlaintext creates a new plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// SupportedContentTypes returns the MIME types this extractor handles.
func (e *Plaintext) SupportedContentTypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/yaml",
		"text/toml",
		"text/html",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (e *Plaintext) Priority() int {
	return 5 // Fallback extractor
}

// Extract converts the raw bytes to sanitised plain text.
// Invalid UTF-8 sequences are replaced; NUL bytes are dropped so that
// binary uploads degrade to something indexable instead of failing.
func (e *Plaintext) Extract(_ context.Context, data []byte, _ string) (*driven.Extraction, error) {
	return &driven.Extraction{Text: Sanitise(data)}, nil
}

// Sanitise converts raw bytes to valid UTF-8 text without NUL bytes.
func Sanitise(data []byte) string {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return strings.ReplaceAll(text, "\x00", "")
}
