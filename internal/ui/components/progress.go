package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// minBarWidth keeps a bar visible next to a long label.
const minBarWidth = 4

// ProgressBar shows a fraction in [0, 1] as a filled bar. Values outside the
// range are clamped; a full bar switches to the success colour.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar for fraction done.
func NewProgressBar(label string, done float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     min(max(done, 0), 1),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Complete reports whether the bar is full.
func (p ProgressBar) Complete() bool {
	return p.Percent >= 1
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		pct := lipgloss.NewStyle().Foreground(theme.TextDim)
		if p.Complete() {
			pct = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		}
		suffix = "  " + pct.Render(fmt.Sprintf("%3d%%", int(p.Percent*100)))
	}

	cells := max(p.Width-lipgloss.Width(b.String())-lipgloss.Width(suffix), minBarWidth)
	filled := min(int(float64(cells)*p.Percent), cells)

	fill := theme.ProgressFilled
	if p.Complete() {
		fill = lipgloss.NewStyle().Background(theme.Success)
	}
	b.WriteString(fill.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)))
	b.WriteString(suffix)
	return b.String()
}
