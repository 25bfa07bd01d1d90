package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doclens/doclens/internal/chunker"
	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// maxKeywordsPerChunk bounds the keywords extracted from one chunk.
const maxKeywordsPerChunk = 8

// maxRelatedPerChunk bounds the cross-document related links per chunk.
const maxRelatedPerChunk = 5

// relatedKeywordOverlap is the shared-keyword count that makes two chunks
// related.
const relatedKeywordOverlap = 2

// Extractor is the slice of the extraction registry the ingest flow needs.
type Extractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (*driven.Extraction, error)
}

// DocumentService manages the document lifecycle: extraction, chunking,
// enrichment and storage.
type DocumentService struct {
	store     driven.DocumentStore
	extractor Extractor
	splitter  *chunker.Splitter
	embedder  driven.EmbeddingService
}

// NewDocumentService creates a document service.
// The embedder is optional (can be nil); without it chunks carry no
// embeddings and search degrades to keyword ranking.
func NewDocumentService(
	store driven.DocumentStore,
	extractor Extractor,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
) *DocumentService {
	return &DocumentService{
		store:     store,
		extractor: extractor,
		splitter:  splitter,
		embedder:  embedder,
	}
}

// Ingest extracts, chunks and indexes an uploaded file.
// The document and all its chunks are staged fully before the single
// atomic store call, so readers never observe a half-built document.
func (s *DocumentService) Ingest(
	ctx context.Context, filename string, data []byte, contentType string,
) (*domain.Document, error) {
	logger.Section("Ingestion")
	logger.Debug("File: %q, type: %s, %d bytes", filename, contentType, len(data))

	if filename == "" || len(data) == 0 {
		return nil, fmt.Errorf("%w: filename and content are required", domain.ErrInvalidInput)
	}

	text, segments := s.extractText(ctx, data, contentType)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no extractable text", domain.ErrInvalidInput)
	}

	doc := &domain.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		Content:     text,
		UploadedAt:  time.Now(),
		SizeBytes:   int64(len(data)),
		ContentType: contentType,
	}

	chunks := s.buildChunks(ctx, doc, text, segments)
	logger.Debug("Built %d chunks", len(chunks))

	doc.ChunkIDs = make([]string, len(chunks))
	for i, chunk := range chunks {
		doc.ChunkIDs[i] = chunk.ID
	}

	if err := s.store.SaveDocument(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if err := s.linkRelatedChunks(ctx, doc.ID, chunks); err != nil {
		logger.Warn("Related-chunk linking failed: %v", err)
	}

	logger.Info("Ingested %q as %s with %d chunks", filename, doc.ID, len(chunks))
	return doc, nil
}

// extractText runs the extractor, falling back to treating the raw bytes
// as plain text when extraction fails.
func (s *DocumentService) extractText(
	ctx context.Context, data []byte, contentType string,
) (string, []driven.Segment) {
	extraction, err := s.extractor.Extract(ctx, data, contentType)
	if err != nil {
		logger.Warn("Extraction failed (%v), falling back to plain text", err)
		return string(data), nil
	}
	return extraction.Text, extraction.Segments
}

// buildChunks turns the extracted text into fully wired chunks: ids,
// offsets, type tags, keywords, layout hints, embeddings and the
// prev/next chain in creation order.
func (s *DocumentService) buildChunks(
	ctx context.Context, doc *domain.Document, text string, segments []driven.Segment,
) []domain.Chunk {
	spans := s.splitter.Split(text)
	chunks := make([]domain.Chunk, 0, len(spans))

	for _, span := range spans {
		chunk := domain.Chunk{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			Content:     span.Content,
			Type:        classifyChunk(span.Content),
			StartOffset: span.Start,
			EndOffset:   span.End,
			Metadata: domain.ChunkMetadata{
				Confidence: 1.0,
				Keywords:   extractKeywords(span.Content, maxKeywordsPerChunk),
			},
		}

		applyLayoutHints(&chunk, segments)

		if s.embedder != nil {
			embedding, err := s.embedder.Embed(ctx, span.Content)
			if err != nil {
				logger.Warn("Embedding failed for chunk %s: %v", chunk.ID, err)
			} else {
				chunk.Embedding = embedding
			}
		}

		chunks = append(chunks, chunk)
	}

	// Wire the prev/next chain in creation order.
	for i := range chunks {
		if i > 0 {
			chunks[i].PrevID = chunks[i-1].ID
		}
		if i < len(chunks)-1 {
			chunks[i].NextID = chunks[i+1].ID
		}
	}

	return chunks
}

// applyLayoutHints copies layout metadata from the segment covering the
// chunk's start offset, when the extractor reported any.
func applyLayoutHints(chunk *domain.Chunk, segments []driven.Segment) {
	for i := range segments {
		seg := &segments[i]
		if chunk.StartOffset >= seg.Start && chunk.StartOffset < seg.End {
			chunk.Metadata.Page = seg.Page
			chunk.Metadata.Rect = seg.Rect
			chunk.Metadata.FontSize = seg.FontSize
			chunk.Metadata.Depth = seg.Depth
			return
		}
	}
}

// linkRelatedChunks cross-references chunks of the new document with
// chunks elsewhere in the index that share enough keywords.
func (s *DocumentService) linkRelatedChunks(
	ctx context.Context, docID string, chunks []domain.Chunk,
) error {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		if len(chunk.Metadata.Keywords) < relatedKeywordOverlap {
			continue
		}
		keywords := make(map[string]bool, len(chunk.Metadata.Keywords))
		for _, kw := range chunk.Metadata.Keywords {
			keywords[kw] = true
		}

		var related []string
		for _, other := range docs {
			if other.ID == docID || len(related) >= maxRelatedPerChunk {
				continue
			}
			otherChunks, err := s.store.GetChunks(ctx, other.ID)
			if err != nil {
				continue
			}
			for _, oc := range otherChunks {
				if len(related) >= maxRelatedPerChunk {
					break
				}
				shared := 0
				for _, kw := range oc.Metadata.Keywords {
					if keywords[kw] {
						shared++
					}
				}
				if shared >= relatedKeywordOverlap {
					related = append(related, oc.ID)
				}
			}
		}

		if len(related) > 0 {
			if err := s.store.LinkRelated(ctx, chunk.ID, related); err != nil {
				return err
			}
		}
	}

	return nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// Chunks returns a document's chunks in creation order.
func (s *DocumentService) Chunks(ctx context.Context, id string) ([]domain.Chunk, error) {
	return s.store.GetChunks(ctx, id)
}

// List returns all documents in insertion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Remove deletes a document and its chunks.
func (s *DocumentService) Remove(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteDocument(ctx, id)
}

// Clear removes every document.
func (s *DocumentService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Annotate sets the summary on a document.
func (s *DocumentService) Annotate(ctx context.Context, id, summary string) error {
	return s.store.UpdateSummary(ctx, id, summary)
}

// classifyChunk tags a chunk with its structural role based on the shape
// of its content.
func classifyChunk(content string) domain.ChunkType {
	lines := strings.Split(content, "\n")
	trimmed := strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(trimmed, "[image:"):
		return domain.ChunkTypeImage
	case strings.Contains(content, "```"):
		return domain.ChunkTypeCode
	case countLines(lines, isTableLine) >= 2:
		return domain.ChunkTypeTable
	case countLines(lines, isListLine) >= 2:
		return domain.ChunkTypeList
	case len(lines) <= 2 && strings.HasPrefix(trimmed, "#"):
		return domain.ChunkTypeHeading
	default:
		return domain.ChunkTypeText
	}
}

func countLines(lines []string, match func(string) bool) int {
	n := 0
	for _, line := range lines {
		if match(strings.TrimSpace(line)) {
			n++
		}
	}
	return n
}

func isTableLine(line string) bool {
	return strings.Count(line, "|") >= 2
}

func isListLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	// Numbered items: "1. ", "2) " etc.
	if len(line) >= 3 && line[0] >= '0' && line[0] <= '9' && (line[1] == '.' || line[1] == ')') && line[2] == ' ' {
		return true
	}
	return false
}

// stopwords excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"have": true, "this": true, "that": true, "with": true, "they": true,
	"from": true, "will": true, "would": true, "there": true, "their": true,
	"what": true, "about": true, "which": true, "when": true, "were": true,
	"been": true, "more": true, "also": true, "into": true, "than": true,
	"its": true, "your": true, "some": true, "could": true, "them": true,
	"these": true, "then": true, "such": true, "over": true, "only": true,
}

// extractKeywords returns the most frequent meaningful terms of the text.
func extractKeywords(text string, limit int) []string {
	freq := make(map[string]int)
	for _, term := range strings.Fields(strings.ToLower(text)) {
		term = strings.Trim(term, ".,;:!?\"'()[]{}#*|`-")
		if len(term) <= 2 || stopwords[term] {
			continue
		}
		freq[term]++
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
