package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/core/ports/driving"
)

var (
	askBudget int
	askLimit  int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
	Long: `Retrieves the most relevant chunks, assembles them into a
token-budgeted context and asks the configured language model.
Repeated questions are served from the response cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askBudget, "budget", 2000, "token budget for the assembled context")
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "maximum number of chunks to retrieve")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if askService == nil {
		return errors.New("ask service not configured")
	}

	limit := askLimit
	if !cmd.Flags().Changed("limit") {
		limit = defaults.MaxResults
	}

	result, err := askService.Ask(context.Background(), question, driving.AskOptions{
		TokenBudget: askBudget,
		MaxResults:  limit,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(result.Answer)
	if result.FromCache {
		cmd.Println("\n(served from cache)")
	}
	return nil
}
