// Package coach asks a language model for an example sentence and a
// mnemonic for the word being learned.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/vocabdrill/internal/llm"
	"github.com/abhisek/vocabdrill/internal/words"
)

// ErrDisabled is returned when no provider is configured.
var ErrDisabled = errors.New("word coach is disabled")

// Tip is the coach's answer for one word.
type Tip struct {
	Example     string `json:"example"`
	Translation string `json:"translation"`
	Mnemonic    string `json:"mnemonic"`
}

type Config struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds a single Explain call, retries included.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// Coach explains words, remembering answers for the life of the process.
type Coach struct {
	provider llm.Provider
	cfg      Config

	mu   sync.Mutex
	tips map[int64]Tip
}

// New returns a Coach over provider. A nil provider yields a disabled
// coach whose Explain always fails with ErrDisabled.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg, tips: make(map[int64]Tip)}
}

func (c *Coach) Enabled() bool { return c != nil && c.provider != nil }

// Explain returns a tip for w. Tips are cached by word id.
func (c *Coach) Explain(ctx context.Context, w words.Word) (Tip, error) {
	if !c.Enabled() {
		return Tip{}, ErrDisabled
	}
	if strings.TrimSpace(w.English) == "" {
		return Tip{}, fmt.Errorf("explain word %d: empty term", w.ID)
	}

	c.mu.Lock()
	tip, ok := c.tips[w.ID]
	c.mu.Unlock()
	if ok && w.ID != 0 {
		return tip, nil
	}

	ctx = llm.WithPurpose(ctx, "word-coach")
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(w)}},
		Schema:      TipSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Tip{}, fmt.Errorf("coach %q: %w", w.English, err)
	}
	if err := json.Unmarshal(resp.Content, &tip); err != nil {
		return Tip{}, fmt.Errorf("parse coach response: %w", err)
	}

	if w.ID != 0 {
		c.mu.Lock()
		c.tips[w.ID] = tip
		c.mu.Unlock()
	}
	return tip, nil
}
