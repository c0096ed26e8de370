// Package welcome is the startup splash. It loads the learner's profile in
// the background and hands over to the home screen once that is done.
package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	phase2End    = 800 * time.Millisecond
	// minShown keeps the splash up long enough to be read.
	minShown = 1200 * time.Millisecond
)

const cardArt = `╭───────────╮
│   A → Я   │
╰───────────╯`

// sparkle frames cycle around the card
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

type profileLoadedMsg struct {
	Status profile.Status
}

// Loader fetches or creates the profile.
type Loader func(ctx context.Context) profile.Status

// WelcomeScreen shows a splash animation while the profile loads.
type WelcomeScreen struct {
	load         Loader
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	loaded       bool
	status       profile.Status
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that runs load and then transitions to the
// screen produced by homeFactory.
func New(load Loader, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		load:        load,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	load := w.load
	return tea.Batch(
		tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		}),
		func() tea.Msg {
			return profileLoadedMsg{Status: load(context.Background())}
		},
	)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < minShown {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.loaded && w.elapsed >= minShown {
			return w, w.transition()
		}
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case profileLoadedMsg:
		w.loaded = true
		w.status = msg.Status
		return w, nil

	case tea.KeyPressMsg:
		// Skipping is only possible once there is a profile to show.
		if w.loaded {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(cardArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) == 3 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
			lines[1] = "   " + lines[1] + "   "
			lines[2] = s2 + "  " + lines[2] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn English words, batch by batch"))
	}

	sections = append(sections, "")
	switch {
	case !w.loaded:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Loading your profile..."))
	case w.status == profile.StatusDegraded:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Could not reach the server. Progress will not be saved"))
	case w.status == profile.StatusCreated:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Success).
			Render("Welcome aboard!"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
