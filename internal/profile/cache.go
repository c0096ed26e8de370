package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/abhisek/vocabdrill/internal/api"
	"github.com/abhisek/vocabdrill/internal/host"
	"github.com/abhisek/vocabdrill/internal/store"
)

// learnChunk is the backend's per-request limit for learn-words.
const learnChunk = 50

// Requester performs JSON requests against the backend.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, body, out any) error
}

// FailureJournal records swallowed sync failures.
type FailureJournal interface {
	AppendSyncFailure(ctx context.Context, data store.SyncFailureData) error
}

// Status reports how LoadOrCreate obtained the profile.
type Status int

const (
	StatusLoaded Status = iota
	StatusCreated
	// StatusDegraded means the profile is local only and will not persist.
	StatusDegraded
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusCreated:
		return "created"
	case StatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// createRequest is the POST /users body.
type createRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
}

// LearnResult is the backend's answer to learn-words.
type LearnResult struct {
	Success      bool    `json:"success"`
	LearnedWords []int64 `json:"learned_words"`
	NewWords     int     `json:"new_words"`
	ExpGained    int     `json:"exp_gained"`
	Streak       int     `json:"current_streak"`
}

// Cache is the in-memory mirror of the learner's profile. The cached copy
// is authoritative for the running process; the backend is updated on a
// best-effort basis.
type Cache struct {
	api     Requester
	log     *slog.Logger
	journal FailureJournal

	mu      sync.Mutex
	profile Profile
	status  Status
}

// NewCache creates an empty cache. journal may be nil.
func NewCache(requester Requester, log *slog.Logger, journal FailureJournal) *Cache {
	return &Cache{api: requester, log: log, journal: journal}
}

// Current returns a copy of the cached profile.
func (c *Cache) Current() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

// Status returns how the current profile was obtained.
func (c *Cache) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Degraded reports whether the profile exists only locally.
func (c *Cache) Degraded() bool {
	return c.Status() == StatusDegraded
}

func (c *Cache) set(p Profile, s Status) {
	c.mu.Lock()
	c.profile = p
	c.status = s
	c.mu.Unlock()
}

// Load fetches the profile. A missing user yields an error matching
// api.ErrNotFound.
func (c *Cache) Load(ctx context.Context, userID int64) (Profile, error) {
	var p Profile
	if err := c.api.Request(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &p); err != nil {
		return Profile{}, fmt.Errorf("load profile %d: %w", userID, err)
	}
	normalize(&p)
	c.set(p, StatusLoaded)
	return p.Clone(), nil
}

// Create registers the learner with the backend.
func (c *Cache) Create(ctx context.Context, id host.Identity) (Profile, error) {
	body := createRequest{
		TelegramID: id.User.ID,
		Username:   id.User.UserName,
		FirstName:  id.User.FirstName,
		LastName:   id.User.LastName,
	}
	if body.FirstName == "" {
		body.FirstName = "User"
	}

	var p Profile
	if err := c.api.Request(ctx, http.MethodPost, "/users", body, &p); err != nil {
		return Profile{}, fmt.Errorf("create profile %d: %w", id.User.ID, err)
	}
	normalize(&p)
	c.set(p, StatusCreated)
	return p.Clone(), nil
}

// LoadOrCreate loads the profile, creating it when the backend has none.
// If that fails too, a local profile is cached and StatusDegraded returned.
func (c *Cache) LoadOrCreate(ctx context.Context, id host.Identity) (Profile, Status) {
	p, err := c.Load(ctx, id.User.ID)
	if err == nil {
		return p, StatusLoaded
	}
	c.log.Info("profile load failed, creating", "user_id", id.User.ID, "err", err)
	c.recordFailure(ctx, "load_profile", id.User.ID, err)

	p, err = c.Create(ctx, id)
	if err == nil {
		return p, StatusCreated
	}
	c.log.Warn("profile create failed, using local profile", "user_id", id.User.ID, "err", err)
	c.recordFailure(ctx, "create_profile", id.User.ID, err)

	p = Local(id.User.ID, id.User.UserName, id.User.FirstName, id.User.LastName)
	c.set(p, StatusDegraded)
	return p.Clone(), StatusDegraded
}

// Save persists the cached profile. Failures are logged and journaled; the
// error is returned only for one-shot callers that report it, the TUI
// ignores it.
func (c *Cache) Save(ctx context.Context) error {
	p := c.Current()
	err := c.api.Request(ctx, http.MethodPut, fmt.Sprintf("/users/%d", p.TelegramID), p, nil)
	if err != nil {
		c.log.Warn("profile save failed", "user_id", p.TelegramID, "err", err)
		c.recordFailure(ctx, "save_profile", p.TelegramID, err)
	}
	return err
}

// SetQuota changes the daily quota and saves without waiting on the outcome.
// Only an invalid quota is an error.
func (c *Cache) SetQuota(ctx context.Context, n int) error {
	if err := c.setQuota(n); err != nil {
		return err
	}
	_ = c.Save(ctx)
	return nil
}

// CommitQuota changes the daily quota and reports whether the backend
// accepted it.
func (c *Cache) CommitQuota(ctx context.Context, n int) error {
	if err := c.setQuota(n); err != nil {
		return err
	}
	if err := c.Save(ctx); err != nil {
		return fmt.Errorf("save quota: %w", err)
	}
	return nil
}

func (c *Cache) setQuota(n int) error {
	if n <= 0 {
		return fmt.Errorf("quota must be positive, got %d", n)
	}
	c.mu.Lock()
	q := n
	c.profile.WordsPerDay = &q
	c.mu.Unlock()
	return nil
}

// MarkLearned submits ids to the backend and unions them into the cached
// learned set with today as the last-activity date. The local update happens
// even when the submission fails; the error is only logged and returned for
// callers that want to journal it.
func (c *Cache) MarkLearned(ctx context.Context, ids []int64, today Date) (LearnResult, error) {
	if len(ids) == 0 {
		return LearnResult{Success: true}, nil
	}
	userID := c.Current().TelegramID

	var total LearnResult
	var sendErr error
	for start := 0; start < len(ids); start += learnChunk {
		chunk := ids[start:min(start+learnChunk, len(ids))]
		var res LearnResult
		err := c.api.Request(ctx, http.MethodPost, fmt.Sprintf("/users/%d/learn-words", userID), chunk, &res)
		if err != nil {
			sendErr = errors.Join(sendErr, err)
			continue
		}
		total.Success = true
		total.LearnedWords = res.LearnedWords
		total.NewWords += res.NewWords
		total.ExpGained += res.ExpGained
		total.Streak = res.Streak
	}

	c.mu.Lock()
	c.profile = c.profile.withLearned(ids, today)
	if total.Success {
		c.profile.Exp += total.ExpGained
		if total.Streak > 0 {
			c.profile.Streak = total.Streak
		}
	}
	c.mu.Unlock()

	if sendErr != nil {
		c.log.Warn("learn-words submission failed", "user_id", userID, "ids", len(ids), "err", sendErr)
		c.recordFailure(ctx, "learn_words", userID, sendErr)
		return total, fmt.Errorf("submit learned words: %w", sendErr)
	}
	return total, nil
}

func (c *Cache) recordFailure(ctx context.Context, op string, userID int64, err error) {
	if c.journal == nil {
		return
	}
	data := store.SyncFailureData{
		Operation:    op,
		UserID:       userID,
		ErrorMessage: err.Error(),
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		data.Status = netErr.Status
	}
	if jerr := c.journal.AppendSyncFailure(ctx, data); jerr != nil {
		c.log.Debug("journal sync failure", "err", jerr)
	}
}

func normalize(p *Profile) {
	if p.Learned == nil {
		p.Learned = []int64{}
	}
	if p.Skipped == nil {
		p.Skipped = []int64{}
	}
	p.Learned = union(p.Learned, nil)
	p.Skipped = union(p.Skipped, nil)
}

// RemoteStats is the backend's own view of the learner's progress.
type RemoteStats struct {
	Streak        int  `json:"streak"`
	TotalWords    int  `json:"total_words"`
	TrainingCount int  `json:"training_count"`
	LearnedToday  int  `json:"learned_today"`
	WordsPerDay   *int `json:"words_per_day"`
}

// FetchStats asks the backend for its stats summary of the cached user.
func (c *Cache) FetchStats(ctx context.Context) (RemoteStats, error) {
	id := c.Current().TelegramID
	var st RemoteStats
	if err := c.api.Request(ctx, http.MethodGet, fmt.Sprintf("/users/%d/stats", id), nil, &st); err != nil {
		return RemoteStats{}, fmt.Errorf("fetch stats %d: %w", id, err)
	}
	return st, nil
}
