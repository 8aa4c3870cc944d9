package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"COGNIWISE_LLM_PROVIDER", "COGNIWISE_LLM_TIMEOUT",
		"COGNIWISE_GEMINI_MODELS", "COGNIWISE_OPENAI_MODELS", "COGNIWISE_ANTHROPIC_MODELS", "COGNIWISE_OPENROUTER_MODELS",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearLLMEnv(t)
	cfg := ConfigFromEnv()

	assert.Empty(t, cfg.Provider)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-flash-latest"}, cfg.Gemini.Models)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Error(t, cfg.Validate())
}

func TestConfigFromEnv_DiscoversFirstKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("COGNIWISE_LLM_PROVIDER", " Gemini ")
	t.Setenv("COGNIWISE_GEMINI_MODELS", "gemini-2.5-flash, ,gemini-flash-latest")
	t.Setenv("COGNIWISE_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-flash-latest"}, cfg.Gemini.Models)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	pc, ok := cfg.Selected()
	require.True(t, ok)
	assert.Equal(t, "g-key", pc.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	withModels := func(key string) ProviderConfig {
		return ProviderConfig{APIKey: key, Models: []string{"m"}}
	}
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none configured", Config{}, true},
		{"gemini without key", Config{Provider: ProviderGemini, Gemini: withModels("")}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: withModels("k")}, false},
		{"gemini without models", Config{Provider: ProviderGemini, Gemini: ProviderConfig{APIKey: "k"}}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: withModels("k")}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: withModels("k")}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider_BuildsFallbackChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI = ProviderConfig{APIKey: "k", Models: []string{"gpt-4o-mini", "gpt-4o"}}

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini,gpt-4o", p.ModelID())

	cfg.OpenAI.Models = []string{"gpt-4o-mini"}
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderGemini}, nil, nil)
	assert.Error(t, err)
}
