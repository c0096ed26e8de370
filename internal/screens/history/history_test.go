package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/screens/deps/depstest"
	"github.com/abhisek/vocabdrill/internal/store"
)

var started = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testEnv() *depstest.Env {
	env := depstest.New(profile.Profile{}, nil)
	env.Journal.Sessions = []store.SessionRecord{
		{
			SessionID: "a", Mode: "learn", StartedAt: started, EndedAt: started.Add(95 * time.Second),
			WordCount: 5, BatchesCompleted: 1, Mistakes: []int64{2}, DurationSecs: 95,
			Answers: 16, CorrectAnswers: 15,
		},
		{SessionID: "b", Mode: "review", StartedAt: started.Add(-time.Hour), WordCount: 1, DurationSecs: 20},
	}
	env.Journal.Failures = []store.SyncFailureRecord{{
		Sequence:  1,
		Timestamp: started,
		SyncFailureData: store.SyncFailureData{
			Operation: "mark_learned", UserID: 1, Status: 503, ErrorMessage: "unavailable",
		},
	}}
	return env
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHistoryScreen_Sessions(t *testing.T) {
	s := New(testEnv().Deps)
	s.Update(s.Init()())

	view := s.View(120, 30)
	for _, want := range []string{"Mar 14, 2025 09:30", "learn", "1:35", "5 words", "94% accuracy", "1 mistake"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_ExpandAndNavigate(t *testing.T) {
	s := New(testEnv().Deps)
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "15/16 answers correct") {
		t.Error("expanded row should show details")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "ended early") {
		t.Error("unfinished session should be marked")
	}
}

func TestHistoryScreen_FailuresToggle(t *testing.T) {
	s := New(testEnv().Deps)
	s.Update(s.Init()())

	s.Update(key('f'))
	view := s.View(120, 30)
	for _, want := range []string{"mark_learned", "HTTP 503", "unavailable"} {
		if !strings.Contains(view, want) {
			t.Errorf("failures view missing %q", want)
		}
	}
	if s.KeyHints()[2].Description != "Sessions" {
		t.Error("toggle hint should point back at sessions")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	env := depstest.New(profile.Profile{}, nil)
	s := New(env.Deps)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No sessions yet") {
		t.Error("expected empty state")
	}
	s.Update(key('f'))
	if !strings.Contains(s.View(100, 30), "Every change reached the server") {
		t.Error("expected empty failures state")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	env := testEnv()
	env.Journal.Err = errors.New("locked")
	s := New(env.Deps)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Error: locked") {
		t.Error("expected error text")
	}
}

func TestFailureLine_Network(t *testing.T) {
	line := FailureLine(store.SyncFailureRecord{
		Timestamp:       started,
		SyncFailureData: store.SyncFailureData{Operation: "save_profile", ErrorMessage: "dial tcp"},
	})
	if !strings.Contains(line, "network") {
		t.Errorf("line = %q, want network status", line)
	}
}
