package domain

// RankingStrategy defines how search combines keyword and semantic scores.
type RankingStrategy string

// Available ranking strategies.
const (
	// StrategyKeyword ranks purely by keyword overlap.
	StrategyKeyword RankingStrategy = "keyword"

	// StrategySemantic ranks purely by embedding similarity.
	StrategySemantic RankingStrategy = "semantic"

	// StrategyHybrid blends keyword and semantic scores.
	StrategyHybrid RankingStrategy = "hybrid"
)

// IsValid returns true if the strategy is recognised.
func (s RankingStrategy) IsValid() bool {
	switch s {
	case StrategyKeyword, StrategySemantic, StrategyHybrid:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this strategy needs embeddings to
// contribute anything beyond keyword overlap.
func (s RankingStrategy) RequiresEmbedding() bool {
	return s == StrategySemantic || s == StrategyHybrid
}

// String returns the string representation.
func (s RankingStrategy) String() string {
	return string(s)
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// MaxResults is the maximum number of results. Must be positive.
	MaxResults int

	// MinRelevance drops results scoring below this value.
	// Zero means no threshold.
	MinRelevance float64

	// Strategy selects the ranking strategy. Defaults to hybrid.
	Strategy RankingStrategy

	// KeywordWeight is the keyword share of the hybrid blend, in [0,1].
	// The semantic share is 1 - KeywordWeight. Defaults to 0.5.
	// Only consulted for StrategyHybrid.
	KeywordWeight float64
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched chunk's owning document.
	Document Document

	// Chunk is the specific chunk that matched.
	Chunk Chunk

	// Score is the relevance score. Keyword scores are raw match counts;
	// semantic and hybrid scores are normalised to [0,1].
	Score float64
}

// ContextPayload is the assembled, token-budgeted context block.
type ContextPayload struct {
	// Text is the rendered context, empty when nothing fit the budget.
	Text string

	// IncludedChunkIDs lists the chunks that made it into Text.
	IncludedChunkIDs []string

	// EstimatedTokens is the estimated token cost of the included chunks.
	EstimatedTokens int
}
