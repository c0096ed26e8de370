// Package settings lets the learner pick the daily quota.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// maxQuota bounds a custom quota; the backend serves at most 100 random
// words per request.
const maxQuota = 100

type quotaSavedMsg struct {
	Quota int
	Err   error
}

// SettingsScreen shows the quota choices plus a custom entry.
type SettingsScreen struct {
	d       *deps.Deps
	reason  string
	choices []int

	selected int
	custom   bool
	input    components.TextInput
	saving   bool
	errMsg   string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscapeHandler = (*SettingsScreen)(nil)

// New creates a SettingsScreen. reason, when set, is shown above the
// choices to explain why the learner was sent here.
func New(d *deps.Deps, reason string) *SettingsScreen {
	choices := d.Config.QuotaChoices
	if len(choices) == 0 {
		choices = []int{5, 10, 15}
	}
	s := &SettingsScreen{d: d, reason: reason, choices: choices}
	if q, ok := d.Profiles.Current().Quota(); ok {
		for i, c := range choices {
			if c == q {
				s.selected = i
			}
		}
	}
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// HandlesEscape keeps Esc for leaving the custom entry.
func (s *SettingsScreen) HandlesEscape() bool { return s.custom }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.custom {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quotaSavedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		if s.custom {
			return s.handleCustomKey(msg)
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.choices) {
				s.selected++
			}
		case "enter":
			if s.selected == len(s.choices) {
				s.custom = true
				s.errMsg = ""
				s.input = components.NewTextInput(fmt.Sprintf("1-%d", maxQuota), true, 3)
				return s, s.input.Init()
			}
			return s, s.save(s.choices[s.selected])
		}
		return s, nil
	}

	if s.custom {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleCustomKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.custom = false
		s.errMsg = ""
		return s, nil
	case "enter":
		n, err := s.input.NumericValue()
		if err != nil || n < 1 || n > maxQuota {
			s.errMsg = fmt.Sprintf("Enter a number from 1 to %d", maxQuota)
			return s, nil
		}
		return s, s.save(n)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) save(n int) tea.Cmd {
	s.saving = true
	s.errMsg = ""
	profiles := s.d.Profiles
	return func() tea.Msg {
		return quotaSavedMsg{Quota: n, Err: profiles.SetQuota(context.Background(), n)}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Words per day"))
	b.WriteString("\n")
	if s.reason != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.reason))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var lines []string
	for i, c := range s.choices {
		lines = append(lines, s.option(i, fmt.Sprintf("%d words", c)))
	}
	lines = append(lines, s.option(len(s.choices), "Custom..."))
	list := lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list))
	b.WriteString("\n\n")

	if s.custom {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Quota: "+s.input.View()))
		b.WriteString("\n\n")
	}
	if s.saving {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Saving...")))
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
	}
	return b.String()
}

func (s *SettingsScreen) option(i int, label string) string {
	if i == s.selected {
		return theme.Selected.Render("  ▸ " + label)
	}
	return theme.Unselected.Render("    " + label)
}
