// Package main provides the entry point for the bewerbung command line tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bewerbung",
	Short: "German job application generator",
	Long: `bewerbung writes a cover letter, CV and attachment list for the newest profile in profil/
and the newest job description in Stellenbeschreibung/, using a local Ollama model, the Claude API
or built-in sample texts. Settings are read from .env and .env.local in the project directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	baseDir string
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", ".", "Project directory containing profil/, Stellenbeschreibung/ and Ausgabe/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadConfig reads the project configuration and installs the process logger.
// The returned cleanup closes the log file.
func loadConfig() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, nil, nil, err
	}

	level := config.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger, closeLog := config.SetupLogger(cfg.LogFile, level)
	slog.SetDefault(logger)

	return cfg, logger, func() { _ = closeLog() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
