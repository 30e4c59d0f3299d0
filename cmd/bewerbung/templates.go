package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/observability"
	"github.com/jonathan/bewerbung-generator/internal/rendering"
)

var templatesCommand = &cobra.Command{
	Use:   "templates",
	Short: "List the document templates and their variables",
	Long: `Templates are looked up in Ausgabe/templates/ first and fall back to the built-in ones.
Upper-case variables come from .env, lower-case ones are filled per provider during generation.`,
	RunE: runTemplatesCmd,
}

var templatesInitCommand = &cobra.Command{
	Use:   "init",
	Short: "Copy the built-in templates to Ausgabe/templates for editing",
	RunE:  runTemplatesInitCmd,
}

var templatesForce bool

func init() {
	templatesInitCommand.Flags().BoolVar(&templatesForce, "force", false, "Overwrite existing templates")
	templatesCommand.AddCommand(templatesInitCommand)
	rootCmd.AddCommand(templatesCommand)
}

func runTemplatesCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, cleanup, err := loadConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	renderer := rendering.NewRenderer(cfg.Paths().Templates)
	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, name := range renderer.List() {
		info, err := renderer.Info(name, cfg.Static)
		if err != nil {
			return err
		}
		printer.PrintTemplateInfo(info)
	}
	return nil
}

func runTemplatesInitCmd(cmd *cobra.Command, _ []string) error {
	dir := configPaths().Templates
	written, err := rendering.WriteDefaults(dir, templatesForce)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(written) == 0 {
		_, _ = fmt.Fprintf(out, "Templates already present in %s (use --force to overwrite)\n", dir)
		return nil
	}
	for _, path := range written {
		_, _ = fmt.Fprintf(out, "  ✓ %s\n", path)
	}
	return nil
}
