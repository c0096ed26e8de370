// Package summary is the completion screen shown after the last batch of a
// session.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/progress"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Result is what the finished run reports.
type Result struct {
	Summary   session.Summary
	ExpGained int
	// Synced is false when any batch failed to reach the backend.
	Synced bool
}

type statsLoadedMsg struct {
	Stats progress.Stats
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	d      *deps.Deps
	result Result
	stats  *progress.Stats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(d *deps.Deps, result Result) *SummaryScreen {
	return &SummaryScreen{d: d, result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	d := s.d
	return func() tea.Msg {
		return statsLoadedMsg{Stats: d.Stats(context.Background())}
	}
}

func (s *SummaryScreen) Title() string {
	return "Session complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.stats = &msg.Stats
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "space", " ":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.result.Summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(sum.Title()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(sum.Subtitle()))
	b.WriteString("\n\n")

	row := components.StatRow(cw,
		[2]string{fmt.Sprint(sum.Words), "words practised"},
		[2]string{fmt.Sprint(len(sum.Mistakes)), "mistakes"},
		[2]string{fmt.Sprint(sum.BatchesCompleted), "batches"},
		[2]string{fmt.Sprintf("%.0f%%", sum.Accuracy()*100), "accuracy"},
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	b.WriteString("\n\n")

	if len(sum.Mistakes) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Worth another look")))
		b.WriteString("\n")
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, w := range sum.Mistakes {
			line := fmt.Sprintf("%s  →  %s", w.English, w.Translation)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.result.ExpGained > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d exp", s.result.ExpGained))))
		b.WriteString("\n")
	}
	if !s.result.Synced {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Some progress could not be saved to the server")))
		b.WriteString("\n")
	}

	if st := s.stats; st != nil && st.QuotaSet {
		b.WriteString("\n")
		label := fmt.Sprintf("Today %d/%d", st.Done, st.Target)
		bar := components.NewProgressBar(label, st.Percent/100, true, cw).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(st.Message())))
	}

	return b.String()
}
