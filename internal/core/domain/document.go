package domain

import "time"

// Document represents an ingested document with metadata.
// It is the canonical representation after extraction.
// Documents are immutable after creation except for the Summary annotation.
type Document struct {
	// ID is the unique identifier, generated at ingestion.
	ID string

	// Filename is the name the document was uploaded under.
	Filename string

	// Content is the full extracted text before chunking.
	Content string

	// ChunkIDs lists the document's chunks in creation order.
	ChunkIDs []string

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time

	// Summary is an optional caller-supplied annotation.
	Summary string

	// SizeBytes is the size of the original upload.
	SizeBytes int64

	// ContentType is the declared MIME type of the upload.
	ContentType string
}

// Chunk represents a searchable unit within a document.
// Documents are split into chunks for granular retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	// IDs are never reused, even after the owning document is removed.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the text content of this chunk.
	// It is trimmed and never empty; empty spans are discarded at ingestion.
	Content string

	// Type classifies the chunk's structural role.
	Type ChunkType

	// StartOffset and EndOffset are character offsets into the source text.
	// Offsets are non-decreasing across a document's chunk sequence and may
	// overlap between neighbours by at most the configured overlap width.
	StartOffset int
	EndOffset   int

	// Metadata carries optional layout and enrichment fields.
	Metadata ChunkMetadata

	// Embedding is the vector representation for semantic search.
	// Nil when no embedder was configured at ingestion.
	Embedding []float32

	// PrevID and NextID link neighbouring chunks of the same document,
	// forming a single linear chain in creation order. Back-references
	// only; ownership stays with the document.
	PrevID string
	NextID string

	// RelatedIDs references contextually related chunks elsewhere in the
	// index, discovered via shared keywords.
	RelatedIDs []string
}

// ChunkType classifies the structural role of a chunk.
type ChunkType string

// The closed set of chunk types.
const (
	ChunkTypeText    ChunkType = "text"
	ChunkTypeHeading ChunkType = "heading"
	ChunkTypeList    ChunkType = "list"
	ChunkTypeCode    ChunkType = "code"
	ChunkTypeTable   ChunkType = "table"
	ChunkTypeImage   ChunkType = "image"
)

// IsValid returns true if the chunk type is recognised.
func (t ChunkType) IsValid() bool {
	switch t {
	case ChunkTypeText, ChunkTypeHeading, ChunkTypeList, ChunkTypeCode, ChunkTypeTable, ChunkTypeImage:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ChunkType) String() string {
	return string(t)
}

// ChunkMetadata carries optional layout hints and enrichment data.
// Optional numeric fields are pointers so absence is distinguishable
// from zero.
type ChunkMetadata struct {
	// Page is the 1-based page number, when the extractor reports one.
	Page *int

	// Rect is the layout bounding box, when the extractor reports one.
	Rect *Rect

	// FontSize is the dominant font size within the span.
	FontSize *float64

	// Depth is the hierarchy depth (e.g. heading level).
	Depth *int

	// Confidence is the extraction confidence in [0,1].
	Confidence float64

	// Keywords are terms extracted from the chunk content at ingestion.
	Keywords []string

	// Summary is an optional short summary of the chunk.
	Summary string
}

// Rect is a layout rectangle in extractor coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}
