// Package deps bundles what the screens need from the rest of the app so
// one value can be threaded through the screen stack.
package deps

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/drill"
	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/progress"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/words"
)

// journalWindow is how many recent sessions are read to count today's
// trainings.
const journalWindow = 50

// Profiles is the part of the profile cache the screens use.
type Profiles interface {
	Current() profile.Profile
	Degraded() bool
	SetQuota(ctx context.Context, n int) error
}

// Journal reads back the local session journal.
type Journal interface {
	RecentSessions(ctx context.Context, limit int) ([]store.SessionRecord, error)
	RecentSyncFailures(ctx context.Context, limit int) ([]store.SyncFailureRecord, error)
	MostMissed(ctx context.Context, limit int) ([]store.MissedWord, error)
}

// Pronouncer plays a word.
type Pronouncer interface {
	Play(ctx context.Context, w words.Word) error
}

// Tutor explains a word.
type Tutor interface {
	Enabled() bool
	Explain(ctx context.Context, w words.Word) (coach.Tip, error)
}

// Deps is shared by every screen. Journal, Audio and Coach may be nil.
type Deps struct {
	Profiles Profiles
	Drill    *drill.Service
	Journal  Journal
	Audio    Pronouncer
	Coach    Tutor
	Config   config.DrillConfig
	Log      *slog.Logger

	// Now is replaceable for tests.
	Now func() time.Time
}

// Clock returns the current time.
func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Stats computes today's progress from the cached profile and the journal.
// A journal read failure only loses the training count.
func (d *Deps) Stats(ctx context.Context) progress.Stats {
	now := d.Clock()
	opts := progress.Options{DefaultQuota: d.Config.DefaultQuota}
	if d.Journal != nil {
		records, err := d.Journal.RecentSessions(ctx, journalWindow)
		if err != nil {
			d.Logger().Warn("read journal for stats", "err", err)
		} else {
			opts.TrainingsToday = progress.TrainingsToday(records, now)
		}
	}
	return progress.Compute(d.Profiles.Current(), now, opts)
}

// CoachEnabled reports whether the word coach can be asked.
func (d *Deps) CoachEnabled() bool {
	return d.Coach != nil && d.Coach.Enabled()
}

// Logger returns the configured logger or the default one.
func (d *Deps) Logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}
