package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every card on a screen so
// they line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// StatCard renders a small labelled number, used in rows on the home and
// statistics screens.
func StatCard(value, label string, width int) string {
	v := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value)
	l := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Align(lipgloss.Center).
		Render(v + "\n" + l)
}

// StatRow lays out stat cards side by side, splitting width evenly.
func StatRow(width int, cards ...[2]string) string {
	if len(cards) == 0 {
		return ""
	}
	each := width / len(cards)
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, StatCard(c[0], c[1], each))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Notice renders a one-line colored message, or nothing for an empty text.
func Notice(text string, c color.Color) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(c).Render(text)
}
