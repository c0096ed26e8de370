package stats

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/screens/deps/depstest"
	"github.com/abhisek/vocabdrill/internal/store"
)

func TestStatsScreen_Loading(t *testing.T) {
	env := depstest.New(profile.Profile{}, nil)
	s := New(env.Deps)
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading text before Init completes")
	}
}

func TestStatsScreen_ShowsTotalsAndMissed(t *testing.T) {
	today := profile.DateOf(depstest.Now)
	env := depstest.New(profile.Profile{
		WordsPerDay:      depstest.Quota(5),
		Learned:          []int64{1, 2, 3},
		LastLearningDate: today,
	}, nil)
	env.Journal.Missed = []store.MissedWord{{WordID: 2, Term: "dog", Misses: 3}}

	s := New(env.Deps)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected loaded after Init")
	}

	view := s.View(100, 40)
	for _, want := range []string{"words learned", "Daily quota: 5 words a day", "Most missed", "dog", "3 misses"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatsScreen_JournalErrorKeepsStats(t *testing.T) {
	env := depstest.New(profile.Profile{}, nil)
	env.Journal.Err = errors.New("disk gone")

	s := New(env.Deps)
	s.Update(s.Init()())
	view := s.View(100, 40)
	if !strings.Contains(view, "Daily quota: not set") {
		t.Error("stats should render without the journal")
	}
	if strings.Contains(view, "Most missed") {
		t.Error("missed words should be hidden on a journal error")
	}
}
