package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend, so every attempt is journaled.
// The mock backend is returned bare.
func NewProvider(ctx context.Context, cfg Config, rec Recorder, log *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, cfg.Provider, rec, log), cfg.Retry), nil
}
