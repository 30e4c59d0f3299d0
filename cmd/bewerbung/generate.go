package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/observability"
	"github.com/jonathan/bewerbung-generator/internal/pipeline"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate the application documents for the newest profile and job description",
	Long: `Selects the newest profil/YYYYMMDD_*.pdf and Stellenbeschreibung/YYYYMMDD_*.txt, generates the
cover letter sections with the configured AI provider (or every provider with GENERATE_ALL_PROVIDERS=true)
and writes one folder per provider below Ausgabe/{job}-{profile}/, including PDFs and HTML previews.`,
	RunE: runGenerateCmd,
}

var (
	genClearCache bool
	genNoCache    bool
	genKeepCache  bool
	genNoPDF      bool
)

func init() {
	generateCommand.Flags().BoolVar(&genClearCache, "clear-cache", false, "Clear the content cache before generating")
	generateCommand.Flags().BoolVar(&genNoCache, "no-cache", false, "Neither read nor write the content cache")
	generateCommand.Flags().BoolVar(&genKeepCache, "keep-cache", false, "Keep the cache even if CLEAR_CACHE_ON_START=true")
	generateCommand.Flags().BoolVar(&genNoPDF, "no-pdf", false, "Write HTML previews only")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, cleanup, err := loadConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if genNoPDF {
		opts = append(opts, pipeline.WithPrinter(nil))
	}

	result, err := pipeline.New(cfg, opts...).Run(ctx, pipeline.RunOptions{
		ClearCache: genClearCache,
		KeepCache:  genKeepCache,
		NoCache:    genNoCache,
		OnProgress: func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(out, "%s: %s\n", e.Step, e.Message)
		},
	})

	printer := observability.NewPrinter(out)
	if verbose && result != nil {
		printer.PrintProviderStatuses(result.Statuses)
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrNoDocuments) && result != nil {
			for folder, ferr := range result.Failed {
				_, _ = fmt.Fprintf(out, "  ✗ %s: %v\n", folder, ferr)
			}
		}
		return err
	}

	if verbose {
		for _, name := range result.FolderNames() {
			folder := result.Folders[name]
			printer.PrintJobHeader(folder.Header)
			printer.PrintSections(name, folder.Responses)
		}
	}

	_, _ = fmt.Fprintf(out, "\nDone! %d provider folder(s) in %s\n", len(result.Folders), result.OutputDir)
	for _, name := range result.FolderNames() {
		folder := result.Folders[name]
		line := fmt.Sprintf("  ✓ %s (%d files", name, len(folder.Files))
		if folder.Export != nil {
			line += fmt.Sprintf(", %d PDFs", len(folder.Export.PDFs))
		}
		_, _ = fmt.Fprintln(out, line+")")
	}
	for folder, ferr := range result.Failed {
		_, _ = fmt.Fprintf(out, "  ✗ %s: %v\n", folder, ferr)
	}
	return nil
}
