package driven

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// Extractor converts raw uploaded bytes into plain text.
// Each extractor handles specific declared content types.
type Extractor interface {
	// SupportedContentTypes returns the MIME types this extractor handles.
	SupportedContentTypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the plain text for the raw bytes, with optional
	// per-segment layout hints. Failures are reported as
	// domain.ErrExtractionFailed; callers fall back to treating the raw
	// bytes as plain text.
	Extract(ctx context.Context, data []byte, contentType string) (*Extraction, error)
}

// Extraction is the output of an extractor.
type Extraction struct {
	// Text is the full extracted plain text.
	Text string

	// Segments optionally carries layout hints keyed by character offset
	// ranges of Text. Extractors without layout knowledge leave it nil.
	Segments []Segment
}

// Segment is a layout hint for a region of the extracted text.
type Segment struct {
	// Start and End are character offsets into Extraction.Text.
	Start int
	End   int

	// Page is the 1-based page number, when known.
	Page *int

	// Rect is the bounding box in source coordinates, when known.
	Rect *domain.Rect

	// FontSize is the dominant font size, when known.
	FontSize *float64

	// Depth is the structural depth (e.g. heading level), when known.
	Depth *int
}
