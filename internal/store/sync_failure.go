package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSyncFailure(ctx context.Context, data SyncFailureData) error {
	err := r.insert(ctx, syncFailuresTable,
		[]string{"operation", "user_id", "status", "error_message"},
		[]any{data.Operation, data.UserID, data.Status, truncate(data.ErrorMessage, 2048)},
	)
	if err != nil {
		return fmt.Errorf("save sync failure: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSyncFailures(ctx context.Context, limit int) ([]SyncFailureRecord, error) {
	b := r.builder()
	sel := b.Select("sequence", "created_at", "operation", "user_id", "status", "error_message").
		From(b.Table(syncFailuresTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync failures: %w", err)
	}
	defer rows.Close()

	var out []SyncFailureRecord
	for rows.Next() {
		var rec SyncFailureRecord
		var ms int64
		if err := rows.Scan(&rec.Sequence, &ms, &rec.Operation, &rec.UserID, &rec.Status, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan sync failure: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
