package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tmc/langchaingo/llms"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// autoOrder is the fixed priority of the auto preference: local first, then cloud
var autoOrder = []string{config.ProviderLlama, config.ProviderClaude}

// Factory builds providers from the configuration and records how each one fared.
type Factory struct {
	cfg        *config.Config
	cache      *cache.Cache
	logger     *slog.Logger
	httpClient *http.Client
	cloudLLM   llms.Model

	statuses map[string]types.ProviderStatus
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithCache shares one content cache between the real providers
func WithCache(c *cache.Cache) FactoryOption {
	return func(f *Factory) { f.cache = c }
}

// WithLogger sets the logger handed to every provider
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

// WithHTTPClient sets the HTTP client of the local provider
func WithHTTPClient(c *http.Client) FactoryOption {
	return func(f *Factory) { f.httpClient = c }
}

// WithCloudModel replaces the Anthropic client of the cloud provider
func WithCloudModel(m llms.Model) FactoryOption {
	return func(f *Factory) { f.cloudLLM = m }
}

// NewFactory creates a factory for cfg
func NewFactory(cfg *config.Config, opts ...FactoryOption) *Factory {
	f := &Factory{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	f.reset()
	return f
}

func (f *Factory) reset() {
	f.statuses = map[string]types.ProviderStatus{
		config.ProviderLlama:  {Provider: config.ProviderLlama, State: types.StateSkipped, Reason: "not attempted"},
		config.ProviderClaude: {Provider: config.ProviderClaude, State: types.StateSkipped, Reason: "not attempted"},
		config.ProviderSample: {Provider: config.ProviderSample, State: types.StateSkipped, Reason: "not attempted"},
	}
}

// Create returns the single provider selected by AI_PROVIDER.
//
// auto tries the local model, then the cloud API, then the sample provider. An explicitly
// requested provider that is unavailable is replaced by the sample provider when fallback is
// enabled, and yields ErrNoProvider otherwise. The other real provider is never substituted.
func (f *Factory) Create(ctx context.Context) (Provider, error) {
	f.reset()

	switch f.cfg.AIProvider {
	case config.ProviderSample:
		return f.sample(), nil
	case config.ProviderLlama, config.ProviderClaude:
		if p := f.build(ctx, f.cfg.AIProvider); p != nil {
			return p, nil
		}
		if !f.cfg.AIEnableFallback {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNoProvider, f.cfg.AIProvider, f.statuses[f.cfg.AIProvider].Reason)
		}
		f.logger.Warn("preferred provider unavailable, using sample content", "provider", f.cfg.AIProvider)
		return f.sample(), nil
	case config.ProviderAuto:
	default:
		f.logger.Warn("unknown AI provider, using auto selection", "provider", f.cfg.AIProvider)
	}

	for _, name := range autoOrder {
		if p := f.build(ctx, name); p != nil {
			return p, nil
		}
	}
	f.logger.Warn("no AI provider available, using sample content")
	return f.sample(), nil
}

// CreateAll returns every usable provider in priority order with the sample provider last.
// Construction failures are logged and recorded in Statuses, never returned.
func (f *Factory) CreateAll(ctx context.Context) []Provider {
	f.reset()

	var providers []Provider
	folders := make(map[string]string)
	add := func(p Provider) {
		desc := p.Descriptor()
		if owner, taken := folders[desc.Folder]; taken {
			f.logger.Warn("provider folder already in use, skipping", "provider", desc.Provider, "folder", desc.Folder, "owner", owner)
			f.record(desc, types.StateError, "folder collision")
			return
		}
		folders[desc.Folder] = desc.Provider
		providers = append(providers, p)
	}

	for _, name := range autoOrder {
		if p := f.build(ctx, name); p != nil {
			add(p)
		}
	}
	add(f.sample())
	return providers
}

// Statuses reports the outcome of the last Create or CreateAll call in priority order
func (f *Factory) Statuses() []types.ProviderStatus {
	out := make([]types.ProviderStatus, 0, len(f.statuses))
	for _, name := range append(append([]string(nil), autoOrder...), config.ProviderSample) {
		out = append(out, f.statuses[name])
	}
	return out
}

// build constructs one real provider and returns it only if it is available
func (f *Factory) build(ctx context.Context, name string) Provider {
	var (
		p   Provider
		err error
	)
	switch name {
	case config.ProviderLlama:
		p, err = NewLocalProvider(ctx, LocalOptions{
			Host:        f.cfg.OllamaHost,
			Model:       f.cfg.LlamaModel,
			Temperature: f.cfg.LlamaTemperature,
			MaxTokens:   f.cfg.LlamaMaxTokens,
			HTTPClient:  f.httpClient,
			Cache:       f.cache,
			Logger:      f.logger,
		})
	case config.ProviderClaude:
		p, err = NewCloudProvider(CloudOptions{
			APIKey:      f.cfg.AnthropicAPIKey,
			Model:       f.cfg.ClaudeModel,
			Temperature: f.cfg.ClaudeTemperature,
			MaxTokens:   f.cfg.ClaudeMaxTokens,
			LLM:         f.cloudLLM,
			Cache:       f.cache,
			Logger:      f.logger,
		})
	default:
		err = fmt.Errorf("unknown provider %q", name)
	}

	if err != nil {
		f.logger.Warn("provider construction failed", "provider", name, "error", err)
		f.statuses[name] = types.ProviderStatus{Provider: name, State: types.StateError, Reason: err.Error()}
		return nil
	}

	desc := p.Descriptor()
	if !desc.Available {
		f.record(desc, types.StateUnavailable, desc.Reason)
		return nil
	}
	f.record(desc, types.StateAvailable, "")
	return p
}

func (f *Factory) sample() Provider {
	p := NewSampleProvider()
	f.record(p.Descriptor(), types.StateAvailable, "")
	return p
}

func (f *Factory) record(desc types.ProviderDescriptor, state types.ProviderState, reason string) {
	f.statuses[desc.Provider] = types.ProviderStatus{
		Provider: desc.Provider,
		Model:    desc.Model,
		Folder:   desc.Folder,
		State:    state,
		Reason:   reason,
	}
}
