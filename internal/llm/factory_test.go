package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

func testConfig(provider, ollamaHost, apiKey string) *config.Config {
	return &config.Config{
		AIProvider:        provider,
		AIEnableFallback:  true,
		OutputStructure:   config.OutputByModel,
		AnthropicAPIKey:   apiKey,
		ClaudeModel:       "claude-3-5-sonnet-20241022",
		ClaudeMaxTokens:   1000,
		ClaudeTemperature: 0.3,
		OllamaHost:        ollamaHost,
		LlamaModel:        "llama3.2:3b",
		LlamaTemperature:  0.3,
		LlamaMaxTokens:    1000,
		LogLevel:          "info",
	}
}

func downHost(t *testing.T) string {
	srv := newOllamaServer(t)
	url := srv.URL
	srv.Close()
	return url
}

func TestFactoryCreate_AutoPrefersLocal(t *testing.T) {
	srv := newOllamaServer(t, "llama3.2:3b")
	f := NewFactory(testConfig(config.ProviderAuto, srv.URL, "sk-test"), WithLogger(discardLogger()), WithCloudModel(&fakeLLM{}))

	p, err := f.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama", p.Descriptor().Provider)

	statuses := f.Statuses()
	require.Len(t, statuses, 3)
	assert.Equal(t, types.StateAvailable, statuses[0].State)
	assert.Equal(t, types.StateSkipped, statuses[1].State)
	assert.Equal(t, types.StateSkipped, statuses[2].State)
}

func TestFactoryCreate_AutoFallsThroughToCloud(t *testing.T) {
	f := NewFactory(testConfig(config.ProviderAuto, downHost(t), ""), WithLogger(discardLogger()), WithCloudModel(&fakeLLM{}))

	p, err := f.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Descriptor().Provider)
	assert.Equal(t, types.StateUnavailable, f.Statuses()[0].State)
}

func TestFactoryCreate_AutoEndsWithSample(t *testing.T) {
	f := NewFactory(testConfig(config.ProviderAuto, downHost(t), ""), WithLogger(discardLogger()))

	p, err := f.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sample_content", p.ModelFolder())
}

func TestFactoryCreate_Sample(t *testing.T) {
	f := NewFactory(testConfig(config.ProviderSample, "http://localhost:1", ""), WithLogger(discardLogger()))

	p, err := f.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sample_content", p.ModelFolder())
	assert.Equal(t, types.StateSkipped, f.Statuses()[0].State, "sample preference must not probe other providers")
}

func TestFactoryCreate_ExplicitUnavailable(t *testing.T) {
	t.Run("fallback enabled uses sample", func(t *testing.T) {
		cfg := testConfig(config.ProviderClaude, downHost(t), "")
		p, err := NewFactory(cfg, WithLogger(discardLogger())).Create(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sample", p.Descriptor().Provider)
	})

	t.Run("unavailable claude does not switch to an available llama", func(t *testing.T) {
		srv := newOllamaServer(t, "llama3.2:3b")
		f := NewFactory(testConfig(config.ProviderClaude, srv.URL, ""), WithLogger(discardLogger()))

		p, err := f.Create(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sample_content", p.ModelFolder())

		statuses := f.Statuses()
		require.Len(t, statuses, 3)
		assert.Equal(t, types.StateSkipped, statuses[0].State, "llama must not be probed")
		assert.Equal(t, types.StateUnavailable, statuses[1].State)
	})

	t.Run("unavailable llama does not switch to an available claude", func(t *testing.T) {
		f := NewFactory(testConfig(config.ProviderLlama, downHost(t), "sk-test"), WithLogger(discardLogger()), WithCloudModel(&fakeLLM{}))

		p, err := f.Create(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sample", p.Descriptor().Provider)
		assert.Equal(t, types.StateSkipped, f.Statuses()[1].State)
	})

	t.Run("fallback disabled fails", func(t *testing.T) {
		cfg := testConfig(config.ProviderClaude, downHost(t), "")
		cfg.AIEnableFallback = false
		p, err := NewFactory(cfg, WithLogger(discardLogger())).Create(context.Background())
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrNoProvider)
	})
}

func TestFactoryCreateAll(t *testing.T) {
	srv := newOllamaServer(t, "llama3.2:3b")
	f := NewFactory(testConfig(config.ProviderAuto, srv.URL, "sk-test"), WithLogger(discardLogger()), WithCloudModel(&fakeLLM{}))

	providers := f.CreateAll(context.Background())
	require.Len(t, providers, 3)
	assert.Equal(t, "llama_3-2-3b", providers[0].ModelFolder())
	assert.Equal(t, "claude_sonnet-3-5", providers[1].ModelFolder())
	assert.Equal(t, "sample_content", providers[2].ModelFolder())

	for _, s := range f.Statuses() {
		assert.Equal(t, types.StateAvailable, s.State, s.Provider)
	}
}

func TestFactoryCreateAll_SampleAlwaysLast(t *testing.T) {
	f := NewFactory(testConfig(config.ProviderAuto, downHost(t), "your_api_key_here"), WithLogger(discardLogger()))

	providers := f.CreateAll(context.Background())
	require.Len(t, providers, 1)
	assert.Equal(t, "sample_content", providers[0].ModelFolder())

	statuses := f.Statuses()
	assert.Equal(t, types.StateUnavailable, statuses[0].State)
	assert.Equal(t, types.StateUnavailable, statuses[1].State)
	assert.Equal(t, types.StateAvailable, statuses[2].State)
}

func TestFactoryCreateAll_InvalidHostIsRecorded(t *testing.T) {
	f := NewFactory(testConfig(config.ProviderAuto, "::bad", ""), WithLogger(discardLogger()))

	providers := f.CreateAll(context.Background())
	require.Len(t, providers, 1)
	assert.Equal(t, types.StateError, f.Statuses()[0].State)
}
