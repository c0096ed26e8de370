// Package stats shows the learner's totals and the words they miss most.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/progress"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

const missedLimit = 10

type statsLoadedMsg struct {
	Stats  progress.Stats
	Missed []store.MissedWord
}

// StatsScreen displays progress counters.
type StatsScreen struct {
	d      *deps.Deps
	stats  progress.Stats
	missed []store.MissedWord
	loaded bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(d *deps.Deps) *StatsScreen {
	return &StatsScreen{d: d}
}

func (s *StatsScreen) Init() tea.Cmd {
	d := s.d
	return func() tea.Msg {
		ctx := context.Background()
		msg := statsLoadedMsg{Stats: d.Stats(ctx)}
		if d.Journal != nil {
			missed, err := d.Journal.MostMissed(ctx, missedLimit)
			if err != nil {
				d.Logger().Warn("read most missed words", "err", err)
			}
			msg.Missed = missed
		}
		return msg
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		s.stats = msg.Stats
		s.missed = msg.Missed
		s.loaded = true
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading statistics...")
	}
	st := s.stats
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	row := components.StatRow(cw,
		[2]string{fmt.Sprint(st.TotalLearned), "words learned"},
		[2]string{fmt.Sprint(st.LearnedToday), "today"},
		[2]string{fmt.Sprint(st.Streak), "day streak"},
		[2]string{fmt.Sprint(st.Trainings), "trainings"},
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	b.WriteString("\n\n")

	quota := "not set"
	if st.QuotaSet {
		quota = layout.Plural(st.Quota, "word", "words") + " a day"
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Daily quota: "+quota)))
	b.WriteString("\n")

	label := fmt.Sprintf("Today %d/%d", st.Done, st.Target)
	bar := components.NewProgressBar(label, st.Percent/100, true, cw).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(st.Message())))
	b.WriteString("\n\n")

	if len(s.missed) == 0 {
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Most missed")))
	b.WriteString("\n")
	for _, m := range s.missed {
		line := fmt.Sprintf("%-20s %s", m.Term, layout.Plural(m.Misses, "miss", "misses"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
