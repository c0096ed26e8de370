package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/vocabdrill/internal/store"
)

// Recorder persists one row per LLM call. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider journals every call, successful or not.
type LoggingProvider struct {
	inner    Provider
	provider string
	rec      Recorder
	log      *slog.Logger
}

// WithLogging wraps p so that each Generate is recorded under the given
// provider name.
func WithLogging(p Provider, provider string, rec Recorder, log *slog.Logger) Provider {
	return &LoggingProvider{inner: p, provider: provider, rec: rec, log: log}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed", "provider", l.provider, "purpose", data.Purpose, "err", err)
	} else {
		l.log.Debug("llm request", "provider", l.provider, "model", data.Model,
			"purpose", data.Purpose, "latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	// The journal is best effort; the caller still gets the answer.
	if jerr := l.rec.AppendLLMRequest(context.WithoutCancel(ctx), data); jerr != nil {
		l.log.Warn("journal llm request", "err", jerr)
	}
	return resp, err
}

// transcript renders the request as readable text for the journal.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
