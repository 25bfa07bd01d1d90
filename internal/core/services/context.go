package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// contextPreamble opens every assembled context block.
const contextPreamble = "You are answering using the following document excerpts. " +
	"Base your answer on this material and say so when it does not cover the question.\n"

// contextClosing ends every assembled context block.
const contextClosing = "\nAnswer using only the excerpts above."

// ContextService assembles ranked search results into a token-budgeted
// context payload.
type ContextService struct {
	counter driven.TokenCounter
}

// NewContextService creates a context service.
// A nil counter falls back to the character heuristic.
func NewContextService(counter driven.TokenCounter) *ContextService {
	if counter == nil {
		counter = HeuristicCounter{}
	}
	return &ContextService{counter: counter}
}

// Assemble selects chunks greedily in rank order until one would overflow
// the budget, then renders a structured block per source document.
// Budget exhaustion is rank-order-strict: the walk stops at the first
// chunk that does not fit, and chunk content is never truncated.
func (s *ContextService) Assemble(
	_ context.Context, results []domain.SearchResult, tokenBudget int,
) (*domain.ContextPayload, error) {
	if tokenBudget <= 0 {
		return nil, fmt.Errorf("%w: token budget must be positive, got %d",
			domain.ErrInvalidConfig, tokenBudget)
	}

	logger.Section("Context Assembly")
	logger.Debug("Budget: %d tokens, candidates: %d", tokenBudget, len(results))

	included := make([]domain.SearchResult, 0, len(results))
	includedIDs := make([]string, 0, len(results))
	total := 0

	for _, result := range results {
		cost := s.counter.Count(result.Chunk.Content)
		if total+cost > tokenBudget {
			logger.Debug("Chunk %s (%d tokens) would overflow, stopping", result.Chunk.ID, cost)
			break
		}
		total += cost
		included = append(included, result)
		includedIDs = append(includedIDs, result.Chunk.ID)
	}

	if len(included) == 0 {
		logger.Info("Nothing fit the budget")
		return &domain.ContextPayload{IncludedChunkIDs: []string{}}, nil
	}

	text := renderContext(included)
	logger.Info("Included %d chunks, ~%d tokens", len(included), total)

	return &domain.ContextPayload{
		Text:             text,
		IncludedChunkIDs: includedIDs,
		EstimatedTokens:  total,
	}, nil
}

// renderContext groups the included chunks by document (in order of first
// appearance in the ranking) and renders one block per document with its
// chunks restored to original document order.
func renderContext(included []domain.SearchResult) string {
	type docGroup struct {
		doc    domain.Document
		chunks []domain.Chunk
	}

	groups := make(map[string]*docGroup)
	order := make([]string, 0)

	for _, result := range included {
		g, ok := groups[result.Document.ID]
		if !ok {
			g = &docGroup{doc: result.Document}
			groups[result.Document.ID] = g
			order = append(order, result.Document.ID)
		}
		g.chunks = append(g.chunks, result.Chunk)
	}

	var b strings.Builder
	b.WriteString(contextPreamble)

	for _, docID := range order {
		g := groups[docID]

		sort.Slice(g.chunks, func(i, j int) bool {
			return g.chunks[i].StartOffset < g.chunks[j].StartOffset
		})

		b.WriteString(fmt.Sprintf("\n--- %s (uploaded %s) ---\n",
			g.doc.Filename, g.doc.UploadedAt.Format("2006-01-02 15:04")))
		if g.doc.Summary != "" {
			b.WriteString("Summary: " + g.doc.Summary + "\n")
		}

		for _, chunk := range g.chunks {
			b.WriteString("\n[" + chunk.Type.String())
			if chunk.Metadata.Page != nil {
				b.WriteString(fmt.Sprintf(", page %d", *chunk.Metadata.Page))
			}
			b.WriteString("]\n")
			b.WriteString(chunk.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString(contextClosing)
	return b.String()
}
