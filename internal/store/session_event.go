package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders over the shared
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) timestamp() int64 {
	if r.now != nil {
		return r.now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

// insert assigns the next sequence and timestamp and inserts one row.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	query, args := r.builder().Insert(table).
		Columns(append([]string{"sequence", "created_at"}, columns...)...).
		Values(append([]any{seqNum, r.timestamp()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	mistakes := data.Mistakes
	if mistakes == nil {
		mistakes = []int64{}
	}
	encoded, err := json.Marshal(mistakes)
	if err != nil {
		return fmt.Errorf("encode mistakes: %w", err)
	}

	err = r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "action", "mode", "word_count", "batches_completed", "mistakes", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Mode, data.WordCount, data.BatchesCompleted, string(encoded), data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{"session_id", "word_id", "term", "phase", "expected", "given", "correct"},
		[]any{data.SessionID, data.WordID, data.Term, data.Phase, data.Expected, data.Given, data.Correct},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	b := r.builder()
	sel := b.Select("session_id", "mode", "word_count", "created_at").
		From(b.Table(sessionEventsTable)).
		Where(entsql.EQ("action", "start")).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var startedMs int64
		if err := rows.Scan(&rec.SessionID, &rec.Mode, &rec.WordCount, &startedMs); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMs)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	rows.Close()

	for i := range out {
		if err := r.fillSessionEnd(ctx, &out[i]); err != nil {
			return nil, err
		}
		if err := r.fillAnswerCounts(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *eventRepo) fillSessionEnd(ctx context.Context, rec *SessionRecord) error {
	b := r.builder()
	query, args := b.Select("batches_completed", "mistakes", "duration_secs", "created_at").
		From(b.Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("session_id", rec.SessionID),
			entsql.EQ("action", "end"),
		)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var mistakes string
	var endedMs int64
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&rec.BatchesCompleted, &mistakes, &rec.DurationSecs, &endedMs)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query session end %s: %w", rec.SessionID, err)
	}
	rec.EndedAt = time.UnixMilli(endedMs)
	if err := json.Unmarshal([]byte(mistakes), &rec.Mistakes); err != nil {
		return fmt.Errorf("decode mistakes for %s: %w", rec.SessionID, err)
	}
	return nil
}

func (r *eventRepo) fillAnswerCounts(ctx context.Context, rec *SessionRecord) error {
	b := r.builder()
	query, args := b.Select("correct").
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", rec.SessionID)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query answers %s: %w", rec.SessionID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var correct bool
		if err := rows.Scan(&correct); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		rec.Answers++
		if correct {
			rec.CorrectAnswers++
		}
	}
	return rows.Err()
}

func (r *eventRepo) MostMissed(ctx context.Context, limit int) ([]MissedWord, error) {
	b := r.builder()
	sel := b.Select("word_id", "term", entsql.As(entsql.Count("*"), "misses")).
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("correct", false)).
		GroupBy("word_id", "term").
		OrderBy(entsql.Desc("misses"), "word_id")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query missed words: %w", err)
	}
	defer rows.Close()

	var out []MissedWord
	for rows.Next() {
		var m MissedWord
		if err := rows.Scan(&m.WordID, &m.Term, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan missed word: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
