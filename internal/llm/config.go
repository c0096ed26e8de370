package llm

import (
	"fmt"
	"time"

	"github.com/abhisek/vocabdrill/internal/config"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is "anthropic", "openai", "gemini", "mock", or empty for
	// none.
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig also serves OpenRouter and other compatible endpoints via
// BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig shapes the exponential backoff in WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// FromCoach translates the coach section of the app config.
func FromCoach(c config.CoachConfig) Config {
	cfg := Config{
		Provider:  c.Provider,
		Anthropic: AnthropicConfig{APIKey: c.AnthropicKey, Model: c.AnthropicModel},
		OpenAI:    OpenAIConfig{APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL},
		Gemini:    GeminiConfig{APIKey: c.GeminiKey, Model: c.GeminiModel},
		Retry:     DefaultRetry(),
		Timeout:   c.Timeout,
	}
	if c.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.MaxAttempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

// Discover picks the first provider whose conventional API key variable
// is set, checking Gemini, OpenAI and Anthropic in that order. Models keep
// the values already in base.
func Discover(base Config, getenv func(string) string) (Config, bool) {
	cfg := base
	switch {
	case getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = getenv("GEMINI_API_KEY")
	case getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	case getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = getenv("ANTHROPIC_API_KEY")
	default:
		return base, false
	}
	return cfg, true
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "VOCABDRILL_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "VOCABDRILL_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "VOCABDRILL_GEMINI_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
