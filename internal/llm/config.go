package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend answers chat requests. Empty means
	// no provider is configured.
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single attempt against one model.
	Timeout time.Duration
}

// ProviderConfig holds the credentials and ordered model list of one
// provider. Models are tried first to last.
type ProviderConfig struct {
	APIKey  string
	Models  []string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts    int
	InitialWait    time.Duration
	MaxWait        time.Duration
	Multiplier     float64
	AttemptTimeout time.Duration
}

// DefaultConfig returns a Config with the default model lists.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Models: []string{"claude-haiku"}},
		OpenAI:     ProviderConfig{Models: []string{"gpt-4o-mini"}},
		Gemini:     ProviderConfig{Models: []string{"gemini-2.0-flash", "gemini-flash-latest"}},
		OpenRouter: ProviderConfig{Models: []string{"google/gemini-2.0-flash-001"}},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables. When
// COGNIWISE_LLM_PROVIDER is unset the first provider with an API key wins,
// probed in the order Gemini, OpenAI, Anthropic, OpenRouter.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")

	envModels(&cfg.Gemini, "COGNIWISE_GEMINI_MODELS")
	envModels(&cfg.OpenAI, "COGNIWISE_OPENAI_MODELS")
	envModels(&cfg.Anthropic, "COGNIWISE_ANTHROPIC_MODELS")
	envModels(&cfg.OpenRouter, "COGNIWISE_OPENROUTER_MODELS")

	if v := os.Getenv("COGNIWISE_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(os.Getenv("COGNIWISE_LLM_PROVIDER")))
	if cfg.Provider == "" {
		cfg.Provider = cfg.discover()
	}
	return cfg
}

func (c Config) discover() string {
	switch {
	case c.Gemini.APIKey != "":
		return ProviderGemini
	case c.OpenAI.APIKey != "":
		return ProviderOpenAI
	case c.Anthropic.APIKey != "":
		return ProviderAnthropic
	case c.OpenRouter.APIKey != "":
		return ProviderOpenRouter
	}
	return ""
}

func envModels(pc *ProviderConfig, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var models []string
	for _, m := range strings.Split(v, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) > 0 {
		pc.Models = models
	}
}

// Selected returns the configuration of the chosen provider.
func (c Config) Selected() (ProviderConfig, bool) {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini, true
	case ProviderOpenAI:
		return c.OpenAI, true
	case ProviderAnthropic:
		return c.Anthropic, true
	case ProviderOpenRouter:
		return c.OpenRouter, true
	}
	return ProviderConfig{}, false
}

// Validate checks that the selected provider has its API key and at least
// one model.
func (c Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY or COGNIWISE_LLM_PROVIDER")
	}
	if c.Provider == ProviderMock {
		return nil
	}
	pc, ok := c.Selected()
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	if len(pc.Models) == 0 {
		return fmt.Errorf("no models configured for the %s provider", c.Provider)
	}
	return nil
}
