package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/observability"
	"github.com/jonathan/bewerbung-generator/internal/variants"
)

var variantsCommand = &cobra.Command{
	Use:   "variants [DIR]",
	Short: "Compare the cover letter sections of all provider folders of a run",
	Long: `Reads generation_info.json of every provider folder in DIR, or in the newest run directory
below Ausgabe/, and prints size and beginning of each cover letter section side by side.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVariantsCmd,
}

func init() {
	rootCmd.AddCommand(variantsCommand)
}

func runVariantsCmd(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		latest, err := variants.LatestRunDir(configPaths().Output)
		if err != nil {
			return err
		}
		dir = latest
	}

	report, err := variants.Analyze(dir)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintVariants(report)
	return nil
}

func configPaths() config.Paths {
	return config.NewPaths(baseDir)
}
