package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screens/deps/depstest"
	"github.com/abhisek/vocabdrill/internal/screens/learn"
	"github.com/abhisek/vocabdrill/internal/screens/stats"
)

func testModel(t *testing.T) (AppModel, *depstest.Env) {
	t.Helper()
	env := depstest.New(profile.Profile{FirstName: "Anna", WordsPerDay: depstest.Quota(5)}, depstest.Vocabulary(5))
	m := newAppModel(Options{Deps: env.Deps, Scheme: "dark"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel), env
}

func esc(m AppModel) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	return cmd
}

func TestEscPopsPushedScreen(t *testing.T) {
	m, env := testModel(t)
	m.router.Push(stats.New(env.Deps))

	cmd := esc(m)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc on a pushed screen should pop it")
	}
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m, _ := testModel(t)
	if cmd := esc(m); cmd != nil {
		t.Error("Esc on the home screen should do nothing")
	}
}

func TestEscGoesToDrillScreen(t *testing.T) {
	m, env := testModel(t)
	run, err := env.Deps.Drill.StartLearning(context.Background())
	if err != nil {
		t.Fatalf("StartLearning: %v", err)
	}
	m.router.Push(learn.New(env.Deps, run))

	esc(m)
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
	if v := m.router.View(100, 30); !strings.Contains(v, "End session early?") {
		t.Error("Esc in a drill should ask before leaving")
	}
}
