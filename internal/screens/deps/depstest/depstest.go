// Package depstest provides in-memory stand-ins for the screen
// dependencies.
package depstest

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/drill"
	"github.com/abhisek/vocabdrill/internal/logging"
	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/words"
)

// Now is the fixed clock used by New.
var Now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)

// Profiles is an in-memory profile store.
type Profiles struct {
	mu       sync.Mutex
	P        profile.Profile
	Offline  bool
	Marked   [][]int64
	QuotaSet []int
}

func (f *Profiles) Current() profile.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.P.Clone()
}

func (f *Profiles) Degraded() bool { return f.Offline }

func (f *Profiles) SetQuota(_ context.Context, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.QuotaSet = append(f.QuotaSet, n)
	f.P.WordsPerDay = &n
	return nil
}

func (f *Profiles) MarkLearned(_ context.Context, ids []int64, today profile.Date) (profile.LearnResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Marked = append(f.Marked, slices.Clone(ids))
	for _, id := range ids {
		if !slices.Contains(f.P.Learned, id) {
			f.P.Learned = append(f.P.Learned, id)
		}
	}
	f.P.LastLearningDate = today
	return profile.LearnResult{Success: true, ExpGained: 10 * len(ids)}, nil
}

// Words serves a fixed word list.
type Words struct {
	List []words.Word
}

func (f *Words) FetchRandom(_ context.Context, count int, exclude []int64) []words.Word {
	var out []words.Word
	for _, w := range f.List {
		if len(out) == count {
			break
		}
		if !slices.Contains(exclude, w.ID) {
			out = append(out, w)
		}
	}
	return out
}

func (f *Words) FetchByIDs(_ context.Context, ids []int64) []words.Word {
	var out []words.Word
	for _, w := range f.List {
		if slices.Contains(ids, w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// Journal keeps session records in memory.
type Journal struct {
	Sessions []store.SessionRecord
	Failures []store.SyncFailureRecord
	Missed   []store.MissedWord
	Err      error
}

func (j *Journal) RecentSessions(context.Context, int) ([]store.SessionRecord, error) {
	return j.Sessions, j.Err
}

func (j *Journal) RecentSyncFailures(context.Context, int) ([]store.SyncFailureRecord, error) {
	return j.Failures, j.Err
}

func (j *Journal) MostMissed(context.Context, int) ([]store.MissedWord, error) {
	return j.Missed, j.Err
}

// Audio records played words.
type Audio struct {
	Played []string
	Err    error
}

func (a *Audio) Play(_ context.Context, w words.Word) error {
	a.Played = append(a.Played, w.English)
	return a.Err
}

// Coach returns a fixed tip.
type Coach struct {
	Tip   coach.Tip
	Err   error
	Asked []string
}

func (c *Coach) Enabled() bool { return true }

func (c *Coach) Explain(_ context.Context, w words.Word) (coach.Tip, error) {
	c.Asked = append(c.Asked, w.English)
	return c.Tip, c.Err
}

// Vocabulary returns n distinct words with ids 1..n.
func Vocabulary(n int) []words.Word {
	en := []string{"cat", "dog", "house", "car", "book", "water", "sun", "tree", "bread", "river", "cloud", "apple"}
	ru := []string{"кот", "собака", "дом", "машина", "книга", "вода", "солнце", "дерево", "хлеб", "река", "облако", "яблоко"}
	out := make([]words.Word, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, words.Word{
			ID:          int64(i + 1),
			English:     en[i%len(en)],
			Translation: ru[i%len(ru)],
			Transcript:  "[" + en[i%len(en)] + "]",
		})
	}
	return out
}

// Env is a wired set of fakes.
type Env struct {
	Deps     *deps.Deps
	Profiles *Profiles
	Words    *Words
	Journal  *Journal
	Audio    *Audio
	Coach    *Coach
}

// New wires fakes around p and ws with instant feedback delays and a
// seeded random source.
func New(p profile.Profile, ws []words.Word) *Env {
	e := &Env{
		Profiles: &Profiles{P: p},
		Words:    &Words{List: ws},
		Journal:  &Journal{},
		Audio:    &Audio{},
		Coach:    &Coach{},
	}
	cfg := config.Default().Drill
	log := logging.Discard()

	svc := drill.NewService(e.Profiles, e.Words, nil, log, drill.Config{
		BatchSize:    cfg.BatchSize,
		ReviewWindow: cfg.ReviewWindow,
	})
	svc.Now = func() time.Time { return Now }
	svc.NewRand = func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

	e.Deps = &deps.Deps{
		Profiles: e.Profiles,
		Drill:    svc,
		Journal:  e.Journal,
		Audio:    e.Audio,
		Coach:    e.Coach,
		Config:   cfg,
		Log:      log,
		Now:      func() time.Time { return Now },
	}
	return e
}

// Quota returns a pointer for Profile.WordsPerDay.
func Quota(n int) *int { return &n }
