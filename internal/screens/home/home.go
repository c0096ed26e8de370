// Package home is the main menu: today's progress and the way into every
// other screen.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/drill"
	"github.com/abhisek/vocabdrill/internal/progress"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/screens/history"
	"github.com/abhisek/vocabdrill/internal/screens/learn"
	"github.com/abhisek/vocabdrill/internal/screens/settings"
	"github.com/abhisek/vocabdrill/internal/screens/stats"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats progress.Stats
}

type runStartedMsg struct {
	Mode drill.Mode
	Run  *drill.Run
	Err  error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	d     *deps.Deps
	start drill.Mode

	menu       components.Menu
	menuLabels []string
	stats      progress.Stats
	loaded     bool
	starting   bool
	notice     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. A non-empty start mode begins that session
// right away, as the learn and review commands do.
func New(d *deps.Deps, start drill.Mode) *HomeScreen {
	h := &HomeScreen{d: d, start: start}

	h.menuLabels = []string{"Learn new words", "Review", "Settings", "Statistics", "History", "Quit"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd { return h.begin(drill.ModeLearn) }},
		{Label: h.menuLabels[1], Action: func() tea.Cmd { return h.begin(drill.ModeReview) }},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return push(settings.New(d, ""))
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return push(stats.New(d))
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return push(history.New(d))
		}},
		{Label: h.menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{h.loadStats()}
	if h.start != "" {
		cmds = append(cmds, h.begin(h.start))
		h.start = ""
	}
	return tea.Batch(cmds...)
}

// Resume refreshes the progress after a session or a settings change.
func (h *HomeScreen) Resume() tea.Cmd {
	h.starting = false
	return h.loadStats()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) loadStats() tea.Cmd {
	d := h.d
	return func() tea.Msg {
		return statsLoadedMsg{Stats: d.Stats(context.Background())}
	}
}

// begin starts a session in the background.
func (h *HomeScreen) begin(mode drill.Mode) tea.Cmd {
	if h.starting {
		return nil
	}
	h.starting = true
	h.notice = ""
	svc := h.d.Drill
	return func() tea.Msg {
		ctx := context.Background()
		var run *drill.Run
		var err error
		if mode == drill.ModeReview {
			run, err = svc.StartReview(ctx)
		} else {
			run, err = svc.StartLearning(ctx)
		}
		return runStartedMsg{Mode: mode, Run: run, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.Stats
		h.loaded = true
		return h, nil

	case runStartedMsg:
		h.starting = false
		if msg.Err != nil {
			return h, h.startFailed(msg.Err)
		}
		return h, push(learn.New(h.d, msg.Run))
	}

	if h.starting {
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// startFailed turns a start error into a notice, or sends the learner to
// the settings when no quota has been chosen.
func (h *HomeScreen) startFailed(err error) tea.Cmd {
	switch {
	case errors.Is(err, drill.ErrQuotaUnset):
		return push(settings.New(h.d, "Choose how many words a day you want to learn first"))
	case errors.Is(err, drill.ErrQuotaReached):
		h.notice = "All words for today are learned! Come back tomorrow or review what you know"
	case errors.Is(err, drill.ErrNothingToReview):
		h.notice = "No learned words to review yet"
	case errors.Is(err, drill.ErrNoWords):
		h.notice = "No words available right now. Try again later"
	default:
		h.notice = "Could not start the session"
	}
	h.d.Logger().Info("session not started", "err", err)
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderGreeting(h.d.Profiles.Current().DisplayName(), cw))

	if h.loaded {
		sections = append(sections, renderToday(h.stats, cw))
		sections = append(sections, renderStats(h.stats, cw, compact))
	}

	if h.d.Profiles.Degraded() {
		sections = append(sections, renderNotice(
			"Offline mode: progress will not be saved", lipgloss.NewStyle().Foreground(theme.Error), cw))
	}
	switch {
	case h.starting:
		sections = append(sections, renderNotice("Loading words...", theme.Hint, cw))
	case h.notice != "":
		sections = append(sections, renderNotice(h.notice, lipgloss.NewStyle().Foreground(theme.Accent), cw))
	}

	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, compact))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Center(strings.Join(sections, sep), width, height)
}
