package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/observability"
)

var cacheCommand = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the content cache",
}

var cacheClearCommand = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached section",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}
		n := c.Len()
		if err := c.Clear(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached section(s) from %s\n", n, c.Path())
		return nil
	},
}

var cacheStatsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of cached sections and tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintCacheStats(c.Path(), c.Stats())
		return nil
	},
}

func init() {
	cacheCommand.AddCommand(cacheClearCommand, cacheStatsCommand)
	rootCmd.AddCommand(cacheCommand)
}

// openCache works without a valid configuration so a broken .env never blocks clearing
func openCache() (*cache.Cache, error) {
	return cache.Open(configPaths().Cache, slog.Default())
}
