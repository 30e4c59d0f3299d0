package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/prompts"
)

const (
	localProvider   = "llama"
	localConfidence = 0.8

	// probeTimeout bounds the availability check against the Ollama server
	probeTimeout = 5 * time.Second
)

// LocalOptions configures a LocalProvider
type LocalOptions struct {
	Host        string
	Model       string
	Temperature float64
	MaxTokens   int

	// HTTPClient is used for all requests; nil means http.DefaultClient
	HTTPClient *http.Client
	Cache      *cache.Cache
	Logger     *slog.Logger
}

// LocalProvider generates content with a model served by a local Ollama instance.
type LocalProvider struct {
	*engine
	client *api.Client
	model  string
}

// ollamaBackend issues non-streaming generate calls
type ollamaBackend struct {
	client   *api.Client
	model    string
	profiles Profiles
}

// NewLocalProvider creates the provider and probes the server once.
// An unreachable server or a missing model leaves the provider unavailable, not failed.
func NewLocalProvider(ctx context.Context, opts LocalOptions) (*LocalProvider, error) {
	base, err := url.Parse(opts.Host)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid ollama host %q", opts.Host)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := api.NewClient(base, httpClient)
	p := &LocalProvider{
		client: client,
		model:  opts.Model,
		engine: &engine{
			desc:        descriptorFor(localProvider, opts.Model, LocalModelName(opts.Model)),
			confidence:  localConfidence,
			promptFiles: []string{prompts.LocalFile, prompts.ContentFile},
			backend: &ollamaBackend{
				client:   client,
				model:    opts.Model,
				profiles: LocalProfiles(opts.Temperature, opts.MaxTokens),
			},
			cache:  opts.Cache,
			logger: logger.With("provider", localProvider),
		},
	}

	if err := p.probe(ctx); err != nil {
		p.desc.Reason = err.Error()
		p.logger.Info("local model unavailable", "host", opts.Host, "model", opts.Model, "reason", err)
	} else {
		p.desc.Available = true
		p.logger.Info("local model ready", "host", opts.Host, "model", opts.Model)
	}
	return p, nil
}

// probe checks that the server answers and has the configured model installed
func (p *LocalProvider) probe(ctx context.Context) error {
	models, err := p.AvailableModels(ctx)
	if err != nil {
		return err
	}
	for _, name := range models {
		if name == p.model {
			return nil
		}
	}
	return fmt.Errorf("model %s not installed (ollama pull %s)", p.model, p.model)
}

// AvailableModels lists the models installed on the server
func (p *LocalProvider) AvailableModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama not reachable: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		names = append(names, name)
	}
	return names, nil
}

// Pull downloads the configured model and marks the provider available on success
func (p *LocalProvider) Pull(ctx context.Context, progress func(status string)) error {
	err := p.client.Pull(ctx, &api.PullRequest{Model: p.model}, func(r api.ProgressResponse) error {
		if progress != nil {
			progress(r.Status)
		}
		return nil
	})
	if err != nil {
		return &ProviderError{Provider: localProvider, Operation: "pull " + p.model, Cause: err}
	}
	p.desc.Available = true
	p.desc.Reason = ""
	return nil
}

func (b *ollamaBackend) complete(ctx context.Context, call Call) (Completion, error) {
	profile := b.profiles.Get(call.Kind)
	ctx, cancel := context.WithTimeout(ctx, profile.Timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  b.model,
		Prompt: call.Prompt,
		System: call.System,
		Stream: &stream,
		Options: map[string]any{
			"temperature": profile.Temperature,
			"num_predict": profile.MaxTokens,
		},
	}

	var out Completion
	err := b.client.Generate(ctx, req, func(r api.GenerateResponse) error {
		out.Text += r.Response
		if r.Done {
			out.Tokens = r.EvalCount
		}
		return nil
	})
	if err != nil {
		if isTimeout(err) || isTimeout(ctx.Err()) {
			return Completion{}, fmt.Errorf("timed out after %s: %w", profile.Timeout, err)
		}
		return Completion{}, err
	}
	return out, nil
}
