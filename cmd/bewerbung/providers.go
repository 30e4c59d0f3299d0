package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/bewerbung-generator/internal/llm"
	"github.com/jonathan/bewerbung-generator/internal/observability"
	"github.com/jonathan/bewerbung-generator/internal/types"
	"github.com/jonathan/bewerbung-generator/internal/variants"
)

var providersCommand = &cobra.Command{
	Use:   "providers",
	Short: "Show which AI providers are usable",
	Long: `Constructs every provider the way GENERATE_ALL_PROVIDERS=true does and prints the status report.
With --test one opening paragraph is generated per available provider; with --pull the configured
Ollama model is downloaded first if it is missing.`,
	RunE: runProvidersCmd,
}

var (
	providersTest bool
	providersPull bool
)

const (
	testJob     = "Wir suchen einen Senior DevOps Engineer (m/w/d) mit Erfahrung in Kubernetes, Terraform und CI/CD."
	testProfile = "Senior Software Engineer mit 10 Jahren Erfahrung in Go, Cloud-Infrastruktur und Automatisierung."
)

func init() {
	providersCommand.Flags().BoolVar(&providersTest, "test", false, "Generate one sample section per available provider")
	providersCommand.Flags().BoolVar(&providersPull, "pull", false, "Pull LLAMA_MODEL into Ollama if it is not installed")

	rootCmd.AddCommand(providersCommand)
}

func runProvidersCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, cleanup, err := loadConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if providersPull {
		local, err := llm.NewLocalProvider(ctx, llm.LocalOptions{
			Host:        cfg.OllamaHost,
			Model:       cfg.LlamaModel,
			Temperature: cfg.LlamaTemperature,
			MaxTokens:   cfg.LlamaMaxTokens,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		if !local.IsAvailable() {
			_, _ = fmt.Fprintf(out, "Pulling %s from %s...\n", cfg.LlamaModel, cfg.OllamaHost)
			last := ""
			err := local.Pull(ctx, func(status string) {
				if status != last {
					_, _ = fmt.Fprintf(out, "  %s\n", status)
					last = status
				}
			})
			if err != nil {
				return err
			}
		}
	}

	factory := llm.NewFactory(cfg, llm.WithLogger(logger))
	providers := factory.CreateAll(ctx)

	printer := observability.NewPrinter(out)
	printer.PrintProviderStatuses(factory.Statuses())
	_, _ = fmt.Fprintf(out, "AI_PROVIDER=%s GENERATE_ALL_PROVIDERS=%t AI_ENABLE_FALLBACK=%t\n",
		cfg.AIProvider, cfg.GenerateAllProviders, cfg.AIEnableFallback)

	if !providersTest {
		return nil
	}

	req := types.ContentRequest{
		ContentType:    types.ContentEinstiegstext,
		JobDescription: testJob,
		ProfileContent: testProfile,
		CompanyName:    "TechCorp GmbH",
		PositionTitle:  "Senior DevOps Engineer",
	}
	_, _ = fmt.Fprintln(out)
	for _, p := range providers {
		resp, err := p.GenerateContent(ctx, req)
		if err != nil {
			return err
		}
		status := "ok"
		if resp.IsFallback() {
			status = fmt.Sprintf("fallback (%v)", resp.Metadata[types.MetaFallbackReason])
		}
		_, _ = fmt.Fprintf(out, "%s: %s, %d tokens, %.2fs\n  %s\n",
			p.ModelFolder(), status, resp.TokensUsed, resp.ProcessingTime, variants.Preview(resp.GeneratedText, 80))
	}
	return nil
}
