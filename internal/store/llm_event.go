package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, llmRequestsTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms",
			"success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs,
			data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) (LLMUsage, error) {
	b := r.builder()
	query, args := b.Select("input_tokens", "output_tokens", "success").
		From(b.Table(llmRequestsTable)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return LLMUsage{}, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var usage LLMUsage
	for rows.Next() {
		var in, out int
		var ok bool
		if err := rows.Scan(&in, &out, &ok); err != nil {
			return LLMUsage{}, fmt.Errorf("scan LLM usage: %w", err)
		}
		usage.Requests++
		usage.InputTokens += in
		usage.OutputTokens += out
		if !ok {
			usage.Failures++
		}
	}
	return usage, rows.Err()
}
