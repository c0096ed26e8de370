// Package history lists past drill sessions and the sync failures the
// journal recorded.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Failures []store.SyncFailureRecord
	Err      error
}

// HistoryScreen displays past sessions, or the sync failures when toggled.
type HistoryScreen struct {
	journal  deps.Journal
	sessions []store.SessionRecord
	failures []store.SyncFailureRecord
	selected int
	expanded map[int]bool
	failed   bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{
		journal:  d.Journal,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	journal := s.journal
	return func() tea.Msg {
		if journal == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		sessions, err := journal.RecentSessions(ctx, historyLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Failures are secondary; a read error just leaves the list empty.
		failures, _ := journal.RecentSyncFailures(ctx, historyLimit)
		return historyLoadedMsg{Sessions: sessions, Failures: failures}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	toggle := "Sync failures"
	if s.failed {
		toggle = "Sessions"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "F", Description: toggle},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.failures = msg.Failures
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case "enter":
			if !s.failed {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		case "f":
			s.failed = !s.failed
			s.selected = 0
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.failed {
		return len(s.failures)
	}
	return len(s.sessions)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.failed {
		return s.viewFailures(width)
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start learning!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+SessionLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s completed, %d/%d answers correct",
				layout.Plural(sess.BatchesCompleted, "batch", "batches"),
				sess.CorrectAnswers, sess.Answers)
			if sess.EndedAt.IsZero() {
				detail += ", ended early"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) viewFailures(width int) string {
	if len(s.failures) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).
			Render("\n\n  Every change reached the server.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, f := range s.failures {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if i == s.selected {
			prefix = "> "
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+FailureLine(f))))
		b.WriteString("\n")
	}
	return b.String()
}

// SessionLine formats one journaled session on a single line.
func SessionLine(sess store.SessionRecord) string {
	mins := sess.DurationSecs / 60
	secs := sess.DurationSecs % 60

	var accuracy float64
	if sess.Answers > 0 {
		accuracy = float64(sess.CorrectAnswers) / float64(sess.Answers) * 100
	}

	line := fmt.Sprintf("%s  %-6s  %d:%02d  %s  %.0f%% accuracy",
		sess.StartedAt.Format("Jan 02, 2006 15:04"), sess.Mode, mins, secs,
		layout.Plural(sess.WordCount, "word", "words"), accuracy)
	if n := len(sess.Mistakes); n > 0 {
		line += "  " + layout.Plural(n, "mistake", "mistakes")
	}
	return line
}

// FailureLine formats one sync failure on a single line.
func FailureLine(f store.SyncFailureRecord) string {
	status := "network"
	if f.Status > 0 {
		status = fmt.Sprintf("HTTP %d", f.Status)
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		f.Timestamp.Format("Jan 02 15:04"), f.Operation, status, f.ErrorMessage)
}
