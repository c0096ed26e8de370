package store

import (
	"context"
	"time"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID string
	// Action is "start" or "end".
	Action string
	// Mode is "learn" or "review".
	Mode             string
	WordCount        int
	BatchesCompleted int
	// Mistakes are the ids of words answered wrongly at least once.
	Mistakes     []int64
	DurationSecs int
}

// AnswerEventData captures a single scored answer.
type AnswerEventData struct {
	SessionID string
	WordID    int64
	Term      string
	Phase     string
	Expected  string
	Given     string
	Correct   bool
}

// SyncFailureData captures a backend write or read that failed and was
// swallowed.
type SyncFailureData struct {
	Operation    string
	UserID       int64
	Status       int
	ErrorMessage string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionRecord is a finished (or abandoned) session as read back from the
// journal.
type SessionRecord struct {
	SessionID        string
	Mode             string
	StartedAt        time.Time
	EndedAt          time.Time // zero if the session never ended
	WordCount        int
	BatchesCompleted int
	Mistakes         []int64
	DurationSecs     int
	Answers          int
	CorrectAnswers   int
}

// SyncFailureRecord is a journaled sync failure.
type SyncFailureRecord struct {
	Sequence  int64
	Timestamp time.Time
	SyncFailureData
}

// MissedWord counts wrong answers for one word.
type MissedWord struct {
	WordID int64
	Term   string
	Misses int
}

// LLMUsage summarises journaled LLM calls.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the local journal.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSyncFailure(ctx context.Context, data SyncFailureData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// RecentSyncFailures returns up to limit failures, newest first.
	RecentSyncFailures(ctx context.Context, limit int) ([]SyncFailureRecord, error)

	// MostMissed returns the words with the most wrong answers.
	MostMissed(ctx context.Context, limit int) ([]MissedWord, error)

	// LLMUsage totals all journaled LLM calls.
	LLMUsage(ctx context.Context) (LLMUsage, error)
}
