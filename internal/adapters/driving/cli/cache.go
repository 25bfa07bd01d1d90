package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached response",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired entries now",
	Args:  cobra.NoArgs,
	RunE:  runCacheSweep,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheSweepCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if responseCache == nil {
		return errors.New("response cache not configured")
	}

	stats := responseCache.Stats()
	cmd.Printf("Entries:  %d / %d\n", stats.Size, stats.MaxEntries)
	cmd.Printf("TTL:      %s\n", stats.TTL)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if responseCache == nil {
		return errors.New("response cache not configured")
	}

	responseCache.Clear()
	cmd.Println("Cache cleared.")
	return nil
}

func runCacheSweep(cmd *cobra.Command, _ []string) error {
	if responseCache == nil {
		return errors.New("response cache not configured")
	}

	removed := responseCache.SweepExpired()
	cmd.Printf("Removed %d expired entries.\n", removed)
	return nil
}
