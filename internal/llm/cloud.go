package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/prompts"
)

const (
	cloudProvider   = "claude"
	cloudConfidence = 0.9

	placeholderAPIKey = "your_api_key_here"
)

// CloudOptions configures a CloudProvider
type CloudOptions struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// LLM replaces the Anthropic client, mainly for tests
	LLM    llms.Model
	Cache  *cache.Cache
	Logger *slog.Logger
}

// CloudProvider generates content through the Anthropic messages API.
type CloudProvider struct {
	*engine
}

type anthropicBackend struct {
	llm      llms.Model
	profiles Profiles
}

// ValidAPIKey reports whether key looks like a usable Anthropic key
func ValidAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != placeholderAPIKey && strings.HasPrefix(key, "sk-")
}

// NewCloudProvider creates the provider. Without a usable key it is returned unavailable.
func NewCloudProvider(opts CloudOptions) (*CloudProvider, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &CloudProvider{engine: &engine{
		desc:        descriptorFor(cloudProvider, opts.Model, CloudModelName(opts.Model)),
		confidence:  cloudConfidence,
		promptFiles: []string{prompts.ContentFile},
		cache:       opts.Cache,
		logger:      logger.With("provider", cloudProvider),
	}}

	model := opts.LLM
	if model == nil {
		if !ValidAPIKey(opts.APIKey) {
			p.desc.Reason = "ANTHROPIC_API_KEY missing or invalid"
			p.logger.Info("cloud provider unavailable", "reason", p.desc.Reason)
			return p, nil
		}
		var err error
		model, err = anthropic.New(
			anthropic.WithToken(opts.APIKey),
			anthropic.WithModel(opts.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
	}

	p.backend = &anthropicBackend{llm: model, profiles: CloudProfiles(opts.Temperature, opts.MaxTokens)}
	p.desc.Available = true
	p.logger.Info("cloud provider ready", "model", opts.Model)
	return p, nil
}

func (b *anthropicBackend) complete(ctx context.Context, call Call) (Completion, error) {
	profile := b.profiles.Get(call.Kind)
	ctx, cancel := context.WithTimeout(ctx, profile.Timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, call.System),
		llms.TextParts(llms.ChatMessageTypeHuman, call.Prompt),
	}
	resp, err := b.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(profile.MaxTokens),
		llms.WithTemperature(profile.Temperature),
	)
	if err != nil {
		if isTimeout(err) {
			return Completion{}, fmt.Errorf("timed out after %s: %w", profile.Timeout, err)
		}
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("no response choices")
	}

	choice := resp.Choices[0]
	return Completion{
		Text:   choice.Content,
		Tokens: tokenCount(choice.GenerationInfo, "InputTokens") + tokenCount(choice.GenerationInfo, "OutputTokens"),
	}, nil
}

// tokenCount reads a usage counter from generation info, whatever numeric type the client stored
func tokenCount(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
