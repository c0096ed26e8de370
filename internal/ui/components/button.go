// Package components holds the reusable widgets the screens are built from.
package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Buttons is a horizontal row of buttons with one focused.
type Buttons struct {
	Labels  []string
	Focused int
}

// NewButtons creates a row focused on the button at focus.
func NewButtons(focus int, labels ...string) Buttons {
	return Buttons{Labels: labels, Focused: min(max(focus, 0), max(len(labels)-1, 0))}
}

// Update moves the focus with left/right or tab and reports the button
// pressed with enter.
func (b Buttons) Update(msg tea.Msg) (Buttons, int, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.Labels) == 0 {
		return b, 0, false
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if b.Focused > 0 {
			b.Focused--
		}
	case "right", "l", "tab":
		if b.Focused < len(b.Labels)-1 {
			b.Focused++
		}
	case "enter", "space", " ":
		return b, b.Focused, true
	}
	return b, 0, false
}

// View renders the row.
func (b Buttons) View() string {
	parts := make([]string, len(b.Labels))
	for i, label := range b.Labels {
		if i == b.Focused {
			parts[i] = theme.ButtonActive.Render("▸ " + label)
		} else {
			parts[i] = theme.ButtonInactive.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}
