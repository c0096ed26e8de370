package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
	if s.EventRepo() == nil {
		t.Fatal("expected non-nil event repo")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("journal.db")
	if !strings.HasPrefix(got, "journal.db?_pragma=journal_mode(WAL)&") {
		t.Errorf("withPragmas(plain) = %q", got)
	}

	got = withPragmas("file:x?mode=memory")
	if !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Errorf("withPragmas(query) = %q", got)
	}
	if strings.Count(got, "?") != 1 {
		t.Errorf("withPragmas(query) has %d '?', want 1", strings.Count(got, "?"))
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{sessionEventsTable, answerEventsTable, syncFailuresTable, llmRequestsTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	start := SessionEventData{SessionID: "s1", Action: "start", Mode: "learn", WordCount: 3}
	if err := repo.AppendSessionEvent(ctx, start); err != nil {
		t.Fatalf("append start: %v", err)
	}
	answers := []AnswerEventData{
		{SessionID: "s1", WordID: 1, Term: "cat", Phase: "quiz_en_ru", Expected: "кот", Given: "кот", Correct: true},
		{SessionID: "s1", WordID: 2, Term: "dog", Phase: "quiz_en_ru", Expected: "собака", Given: "дом", Correct: false},
		{SessionID: "s1", WordID: 2, Term: "dog", Phase: "text_ru_en", Expected: "dog", Given: "dgo", Correct: false},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}
	end := SessionEventData{SessionID: "s1", Action: "end", Mode: "learn", WordCount: 3,
		BatchesCompleted: 1, Mistakes: []int64{2}, DurationSecs: 42}
	if err := repo.AppendSessionEvent(ctx, end); err != nil {
		t.Fatalf("append end: %v", err)
	}

	// An abandoned session that never ended.
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Action: "start", Mode: "review", WordCount: 5}); err != nil {
		t.Fatalf("append s2: %v", err)
	}

	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}

	if sessions[0].SessionID != "s2" {
		t.Errorf("newest session = %q, want s2", sessions[0].SessionID)
	}
	if !sessions[0].EndedAt.IsZero() {
		t.Errorf("abandoned session has EndedAt %v", sessions[0].EndedAt)
	}

	got := sessions[1]
	if got.Mode != "learn" || got.WordCount != 3 || got.BatchesCompleted != 1 || got.DurationSecs != 42 {
		t.Errorf("session s1 = %+v", got)
	}
	if len(got.Mistakes) != 1 || got.Mistakes[0] != 2 {
		t.Errorf("mistakes = %v, want [2]", got.Mistakes)
	}
	if got.Answers != 3 || got.CorrectAnswers != 1 {
		t.Errorf("answers = %d/%d, want 1/3", got.CorrectAnswers, got.Answers)
	}
	if got.EndedAt.Before(got.StartedAt) {
		t.Errorf("ended %v before started %v", got.EndedAt, got.StartedAt)
	}

	limited, err := repo.RecentSessions(ctx, 1)
	if err != nil {
		t.Fatalf("recent sessions limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len(limited) = %d, want 1", len(limited))
	}
}

func TestMostMissed(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, a := range []AnswerEventData{
		{SessionID: "s", WordID: 1, Term: "cat", Correct: false},
		{SessionID: "s", WordID: 2, Term: "dog", Correct: false},
		{SessionID: "s", WordID: 2, Term: "dog", Correct: false},
		{SessionID: "s", WordID: 3, Term: "sun", Correct: true},
	} {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	missed, err := repo.MostMissed(ctx, 5)
	if err != nil {
		t.Fatalf("most missed: %v", err)
	}
	if len(missed) != 2 {
		t.Fatalf("len(missed) = %d, want 2", len(missed))
	}
	if missed[0].WordID != 2 || missed[0].Misses != 2 || missed[0].Term != "dog" {
		t.Errorf("missed[0] = %+v, want dog x2", missed[0])
	}
	if missed[1].WordID != 1 || missed[1].Misses != 1 {
		t.Errorf("missed[1] = %+v, want cat x1", missed[1])
	}
}

func TestSyncFailures(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	for _, op := range []string{"load_profile", "save_profile", "learn_words"} {
		err := repo.AppendSyncFailure(ctx, SyncFailureData{Operation: op, UserID: 7, Status: 500, ErrorMessage: "boom"})
		if err != nil {
			t.Fatalf("append %s: %v", op, err)
		}
	}

	failures, err := repo.RecentSyncFailures(ctx, 2)
	if err != nil {
		t.Fatalf("recent failures: %v", err)
	}
	if len(failures) != 2 {
		t.Fatalf("len(failures) = %d, want 2", len(failures))
	}
	if failures[0].Operation != "learn_words" || failures[1].Operation != "save_profile" {
		t.Errorf("order = %s, %s; want learn_words, save_profile", failures[0].Operation, failures[1].Operation)
	}
	if failures[0].Sequence <= failures[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", failures[0].Sequence, failures[1].Sequence)
	}
	if failures[0].Timestamp.Before(before) {
		t.Errorf("timestamp %v too old", failures[0].Timestamp)
	}
	if failures[0].UserID != 7 || failures[0].Status != 500 || failures[0].ErrorMessage != "boom" {
		t.Errorf("failure = %+v", failures[0])
	}
}

func TestSyncFailureTruncatesMessage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	long := strings.Repeat("x", 5000)
	if err := repo.AppendSyncFailure(ctx, SyncFailureData{Operation: "save_profile", ErrorMessage: long}); err != nil {
		t.Fatalf("append: %v", err)
	}
	failures, err := repo.RecentSyncFailures(ctx, 1)
	if err != nil {
		t.Fatalf("recent failures: %v", err)
	}
	if len(failures[0].ErrorMessage) != 2048 {
		t.Errorf("message length = %d, want 2048", len(failures[0].ErrorMessage))
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		t.Fatalf("empty usage: %v", err)
	}
	if usage != (LLMUsage{}) {
		t.Errorf("empty usage = %+v", usage)
	}

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "m", Purpose: "word-coach", InputTokens: 100, OutputTokens: 40, LatencyMs: 900, Success: true},
		{Provider: "anthropic", Model: "m", Purpose: "word-coach", InputTokens: 90, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append llm: %v", err)
		}
	}

	usage, err = repo.LLMUsage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := LLMUsage{Requests: 2, Failures: 1, InputTokens: 190, OutputTokens: 40}
	if usage != want {
		t.Errorf("usage = %+v, want %+v", usage, want)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", WordID: 1, Term: "cat"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSyncFailure(ctx, SyncFailureData{Operation: "learn_words"}); err != nil {
		t.Fatal(err)
	}

	var answerSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatal(err)
	}
	failures, err := repo.RecentSyncFailures(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if failures[0].Sequence != answerSeq+1 {
		t.Errorf("failure sequence = %d, want %d", failures[0].Sequence, answerSeq+1)
	}
}
