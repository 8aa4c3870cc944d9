package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cogniwise/cogniwise/internal/store"
)

// NewProvider builds the configured provider. Each model is wrapped as
// retry → logging → base, and the models are chained for fallback in the
// configured order.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if cfg.Provider == ProviderMock {
		return NewMockProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pc, _ := cfg.Selected()

	retry := cfg.Retry
	if retry.AttemptTimeout == 0 {
		retry.AttemptTimeout = cfg.Timeout
	}

	chain := make([]Provider, 0, len(pc.Models))
	for _, model := range pc.Models {
		base, err := newBase(ctx, cfg.Provider, pc, model)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider for %s: %w", cfg.Provider, model, err)
		}
		chain = append(chain, WithRetry(WithLogging(base, cfg.Provider, events, log), retry))
	}
	return WithFallback(chain...), nil
}

func newBase(ctx context.Context, provider string, pc ProviderConfig, model string) (Provider, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiProvider(ctx, pc.APIKey, model)
	case ProviderOpenAI:
		return NewOpenAIProvider(pc.APIKey, model, pc.BaseURL)
	case ProviderAnthropic:
		return NewAnthropicProvider(pc.APIKey, model)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(pc.APIKey, model, pc.BaseURL)
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", provider)
}
