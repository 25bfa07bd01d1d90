// Package cli implements the doclens command line interface.
//
// Commands talk to the core through the driving ports; the concrete
// services are injected once at startup via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/cache"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected at startup. Commands check for nil so that a
// partially wired binary fails with a clear message instead of a panic.
var (
	documentService driving.DocumentService
	searchService   driving.SearchService
	askService      driving.AskService
	responseCache   *cache.ResponseCache
)

// Defaults are the config-derived fallbacks applied when a flag is not
// set explicitly on the command line.
type Defaults struct {
	MaxResults    int
	MinRelevance  float64
	Strategy      string
	KeywordWeight float64
}

var defaults = Defaults{
	MaxResults:    5,
	Strategy:      "hybrid",
	KeywordWeight: 0.5,
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "Ask questions about your documents",
	Long: `doclens ingests documents, splits them into searchable chunks,
and answers questions grounded in the retrieved content.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetDefaults injects the config-derived flag fallbacks.
func SetDefaults(d Defaults) {
	defaults = d
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

// SetServices injects the core services the commands operate on.
func SetServices(
	docs driving.DocumentService,
	search driving.SearchService,
	ask driving.AskService,
	respCache *cache.ResponseCache,
) {
	documentService = docs
	searchService = search
	askService = ask
	responseCache = respCache
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
