package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/vocabdrill/internal/config"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.InputTokens != 10 || first.StopReason != "end" {
		t.Errorf("first = %+v", first)
	}

	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Errorf("second content = %s", second.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("drained mock error = %T, want *ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider()
	if err := mock.Reply(map[string]string{"example": "no translation"}); err != nil {
		t.Fatal(err)
	}
	_, err := mock.Generate(context.Background(), Request{Schema: tipSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("error = %T (%v), want *ErrInvalidResponse", err, err)
	}
}

func TestMockProvider_RecordsCallsAndErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{System: "sys"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %T, want *ErrRateLimit", err)
	}
	if mock.Calls[0].System != "sys" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID() = %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q, want unknown", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "word-coach")); p != "word-coach" {
		t.Errorf("PurposeFrom() = %q, want word-coach", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock", Config{Provider: "mock"}, false},
		{"empty", Config{}, true},
		{"unknown", Config{Provider: "openrouter"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromCoach(t *testing.T) {
	cfg := FromCoach(config.CoachConfig{
		Provider:      "openai",
		OpenAIKey:     "sk",
		OpenAIModel:   "gpt-4o",
		OpenAIBaseURL: "https://openrouter.ai/api/v1",
		MaxAttempts:   5,
	})
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk" || cfg.OpenAI.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Timeout)
	}
}

func TestDiscover(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "o", "ANTHROPIC_API_KEY": "a"}
	base := Config{OpenAI: OpenAIConfig{Model: "gpt-4o"}}

	cfg, ok := Discover(base, func(k string) string { return env[k] })
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Discover() = %+v, %v", cfg, ok)
	}

	if _, ok := Discover(base, func(string) string { return "" }); ok {
		t.Error("Discover() found a provider in an empty environment")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("mock provider type = %T", p)
	}

	p, err = NewProvider(context.Background(), Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{APIKey: "k", Model: "claude-haiku"},
		Retry:     DefaultRetry(),
	}, &fakeRecorder{}, discard())
	if err != nil {
		t.Fatalf("anthropic: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("outer provider type = %T, want *RetryProvider", p)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil); err == nil {
		t.Error("expected error for missing key")
	}
}
