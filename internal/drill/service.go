// Package drill starts and finishes learning sessions: it picks the words,
// reports completed batches to the profile and journals what happened.
package drill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vocabdrill/internal/api"
	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/progress"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/words"
)

var (
	// ErrQuotaUnset means the learner has not picked a daily quota yet.
	ErrQuotaUnset = errors.New("daily quota not set")
	// ErrQuotaReached means today's quota of new words is used up.
	ErrQuotaReached = errors.New("all words for today are learned")
	// ErrNothingToReview means the learner has no learned words.
	ErrNothingToReview = errors.New("no learned words to review")
	// ErrNoWords means the backend returned no words for the request.
	ErrNoWords = fmt.Errorf("no words available: %w", api.ErrEmptyResult)
)

// Mode distinguishes new-word sessions from reviews.
type Mode string

const (
	ModeLearn  Mode = "learn"
	ModeReview Mode = "review"
)

// Profiles is the part of the profile cache the service needs.
type Profiles interface {
	Current() profile.Profile
	MarkLearned(ctx context.Context, ids []int64, today profile.Date) (profile.LearnResult, error)
}

// WordSource supplies session words. Both calls return an empty slice on
// failure.
type WordSource interface {
	FetchRandom(ctx context.Context, count int, exclude []int64) []words.Word
	FetchByIDs(ctx context.Context, ids []int64) []words.Word
}

// Journal records sessions and answers.
type Journal interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Config holds the drill settings.
type Config struct {
	BatchSize    int
	ReviewWindow int
}

// Run is one session together with its journal identity.
type Run struct {
	*session.Session
	ID      string
	Mode    Mode
	Started time.Time

	ended bool
}

// BatchResult reports the outcome of CompleteBatch.
type BatchResult struct {
	// Step is StepNextBatch or StepSessionComplete.
	Step session.Step
	// Learned are the ids submitted as learned; empty in review mode.
	Learned []int64
	// Synced is false when the backend submission failed. The profile
	// cache was updated regardless.
	Synced    bool
	ExpGained int
}

// Service owns session creation. Only the most recently started run is
// current; older runs are stale.
type Service struct {
	profiles Profiles
	words    WordSource
	journal  Journal
	log      *slog.Logger
	cfg      Config

	generation atomic.Uint64

	// Now and NewRand are replaceable for tests.
	Now     func() time.Time
	NewRand func() *rand.Rand
}

// NewService creates a Service. journal may be nil.
func NewService(profiles Profiles, source WordSource, journal Journal, log *slog.Logger, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = session.DefaultBatchSize
	}
	if cfg.ReviewWindow <= 0 {
		cfg.ReviewWindow = 10
	}
	return &Service{
		profiles: profiles,
		words:    source,
		journal:  journal,
		log:      log,
		cfg:      cfg,
		Now:      time.Now,
	}
}

// StartLearning begins a session of fresh words, as many as remain in
// today's quota.
func (s *Service) StartLearning(ctx context.Context) (*Run, error) {
	p := s.profiles.Current()
	remaining, ok := progress.Remaining(p, s.Now())
	if !ok {
		return nil, ErrQuotaUnset
	}
	if remaining <= 0 {
		return nil, ErrQuotaReached
	}

	ws := s.words.FetchRandom(ctx, remaining, p.Exclusions())
	if len(ws) == 0 {
		return nil, ErrNoWords
	}
	return s.begin(ctx, ws, ModeLearn), nil
}

// StartReview begins a session over the most recently learned words.
func (s *Service) StartReview(ctx context.Context) (*Run, error) {
	ids := s.profiles.Current().RecentLearned(s.cfg.ReviewWindow)
	if len(ids) == 0 {
		return nil, ErrNothingToReview
	}

	ws := s.words.FetchByIDs(ctx, ids)
	if len(ws) == 0 {
		return nil, ErrNoWords
	}
	return s.begin(ctx, ws, ModeReview), nil
}

func (s *Service) begin(ctx context.Context, ws []words.Word, mode Mode) *Run {
	opts := session.Options{
		BatchSize:  s.cfg.BatchSize,
		Review:     mode == ModeReview,
		Generation: s.generation.Add(1),
	}
	if s.NewRand != nil {
		opts.Rand = s.NewRand()
	}

	run := &Run{
		Session: session.New(ws, opts),
		ID:      uuid.NewString(),
		Mode:    mode,
		Started: s.Now(),
	}
	s.log.Info("session started", "session_id", run.ID, "mode", mode, "words", len(ws))
	s.appendSession(ctx, store.SessionEventData{
		SessionID: run.ID,
		Action:    "start",
		Mode:      string(mode),
		WordCount: len(ws),
	})
	return run
}

// Stale reports whether a newer run has started since r.
func (s *Service) Stale(r *Run) bool {
	return r == nil || r.Generation() != s.generation.Load()
}

// Choose scores a quiz option and journals the answer.
func (s *Service) Choose(ctx context.Context, r *Run, q session.Quiz, option int) bool {
	w, ok := r.Current()
	if !ok || option < 0 || option >= len(q.Options) {
		return false
	}
	phase := r.Phase()
	correct := r.Choose(q, option)
	s.appendAnswer(ctx, store.AnswerEventData{
		SessionID: r.ID,
		WordID:    w.ID,
		Term:      w.English,
		Phase:     phase.String(),
		Expected:  q.Options[q.Answer],
		Given:     q.Options[option],
		Correct:   correct,
	})
	return correct
}

// SubmitText scores a typed answer and journals it.
func (s *Service) SubmitText(ctx context.Context, r *Run, p session.TextPrompt, input string) bool {
	w, ok := r.Current()
	if !ok {
		return false
	}
	correct := r.SubmitText(p, input)
	s.appendAnswer(ctx, store.AnswerEventData{
		SessionID: r.ID,
		WordID:    w.ID,
		Term:      w.English,
		Phase:     session.PhaseTextInput.String(),
		Expected:  p.Expected,
		Given:     input,
		Correct:   correct,
	})
	return correct
}

// CompleteBatch handles a StepBatchComplete: outside review mode the batch
// is submitted as learned, then the run moves to the next batch or ends.
func (s *Service) CompleteBatch(ctx context.Context, r *Run) BatchResult {
	if !r.BatchPending() {
		return BatchResult{Step: session.StepNone}
	}

	res := BatchResult{Synced: true}
	if !r.Review() {
		res.Learned = words.IDs(r.Batch())
		lr, err := s.profiles.MarkLearned(ctx, res.Learned, profile.DateOf(s.Now()))
		res.Synced = err == nil
		res.ExpGained = lr.ExpGained
	}

	res.Step = r.NextBatch()
	if res.Step == session.StepSessionComplete {
		s.Finish(ctx, r)
	}
	return res
}

// Finish journals the end of r. Later calls do nothing, so it is safe to
// call for both completed and abandoned runs.
func (s *Service) Finish(ctx context.Context, r *Run) {
	if r == nil || r.ended {
		return
	}
	r.ended = true

	sum := r.Summary()
	duration := s.Now().Sub(r.Started)
	s.log.Info("session ended", "session_id", r.ID, "mode", r.Mode,
		"batches", sum.BatchesCompleted, "mistakes", len(sum.Mistakes), "completed", r.Done())
	s.appendSession(ctx, store.SessionEventData{
		SessionID:        r.ID,
		Action:           "end",
		Mode:             string(r.Mode),
		WordCount:        sum.Words,
		BatchesCompleted: sum.BatchesCompleted,
		Mistakes:         r.Mistakes(),
		DurationSecs:     int(duration.Seconds()),
	})
}

func (s *Service) appendSession(ctx context.Context, data store.SessionEventData) {
	if s.journal == nil {
		return
	}
	if err := s.journal.AppendSessionEvent(ctx, data); err != nil {
		s.log.Warn("journal session event", "session_id", data.SessionID, "err", err)
	}
}

func (s *Service) appendAnswer(ctx context.Context, data store.AnswerEventData) {
	if s.journal == nil {
		return
	}
	if err := s.journal.AppendAnswerEvent(ctx, data); err != nil {
		s.log.Warn("journal answer event", "session_id", data.SessionID, "err", err)
	}
}
