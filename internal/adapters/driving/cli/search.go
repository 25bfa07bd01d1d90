package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/core/domain"
)

var (
	searchLimit    int
	searchStrategy string
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks stored chunks against the query. The hybrid strategy blends
keyword and semantic scores; keyword and semantic run each signal alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchStrategy, "strategy", "s", "hybrid", "ranking strategy (keyword, semantic, hybrid)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-relevance", 0, "drop results scoring below this threshold")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	limit := searchLimit
	if !cmd.Flags().Changed("limit") {
		limit = defaults.MaxResults
	}
	minScore := searchMinScore
	if !cmd.Flags().Changed("min-relevance") {
		minScore = defaults.MinRelevance
	}
	strategy := searchStrategy
	if !cmd.Flags().Changed("strategy") {
		strategy = defaults.Strategy
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		MaxResults:    limit,
		MinRelevance:  minScore,
		Strategy:      domain.RankingStrategy(strategy),
		KeywordWeight: defaults.KeywordWeight,
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, results[i].Document.Filename, results[i].Score)
		cmd.Printf("      %s\n", snippet(results[i].Chunk.Content, 120))
		cmd.Println()
	}

	return nil
}

// snippet flattens whitespace and truncates content for table output.
func snippet(content string, max int) string {
	out := make([]rune, 0, max)
	lastSpace := false
	for _, r := range content {
		if r == '\n' || r == '\t' || r == ' ' {
			if lastSpace {
				continue
			}
			r = ' '
			lastSpace = true
		} else {
			lastSpace = false
		}
		out = append(out, r)
		if len(out) >= max {
			return string(out) + "..."
		}
	}
	return string(out)
}
