package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// MultiChoice is a numbered option list. After a pick the options are
// revealed: the correct one in green and a wrong pick in red.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Answer   int
	Selected int

	Revealed bool
	Chosen   int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(prompt string, options []string, answer int) MultiChoice {
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Answer:  answer,
		Chosen:  -1,
	}
}

// Update handles arrow-key navigation. Picking is left to the caller, which
// reads Pick.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// Pick maps a key to an option index: "1".."4" choose directly and enter
// chooses the highlighted option. ok is false for any other key or once
// the options are revealed.
func (m MultiChoice) Pick(key string) (int, bool) {
	if m.Revealed {
		return 0, false
	}
	if key == "enter" {
		return m.Selected, len(m.Options) > 0
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		return i, i < len(m.Options)
	}
	return 0, false
}

// Reveal marks i as chosen and shows which option was correct.
func (m *MultiChoice) Reveal(i int) {
	m.Revealed = true
	m.Chosen = i
	m.Selected = i
}

// Reset hides the reveal so the same question can be tried again.
func (m *MultiChoice) Reset() {
	m.Revealed = false
	m.Chosen = -1
}

// IsCorrect returns true if the chosen option is the answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.Chosen == m.Answer
}

// View renders the prompt and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.Answer:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
