package learn

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/words"
)

// defaultGlyph stands in for words without an illustration.
const defaultGlyph = "🇬🇧"

func (s *LearnScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, s.quitButtons)
	}
	if s.saving {
		return centered(width, theme.TextDim, "\n\n\nSaving your progress...")
	}
	if s.interstitial {
		return s.renderInterstitial(width)
	}

	w, ok := s.run.Current()
	if !ok {
		return ""
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(s.renderProgress(width, cw))
	b.WriteString("\n\n")

	var card string
	switch phase := s.run.Phase(); {
	case phase == session.PhaseLearning:
		card = s.renderLearning(w)
	case phase.IsQuiz():
		card = s.renderQuiz()
	default:
		card = s.renderText()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(card, cw)))

	if s.tip != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTip(*s.tip, cw)))
	}
	if s.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.TextDim, s.hint))
	}
	return b.String()
}

func (s *LearnScreen) renderProgress(width, cw int) string {
	phase := s.run.Phase()
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(phase.Label())
	position := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"Batch %d/%d  •  Word %d/%d",
		s.run.BatchIndex()+1, s.run.TotalBatches(), s.run.WordIndex()+1, len(s.run.Batch())))

	gap := max(cw-lipgloss.Width(label)-lipgloss.Width(position), 1)
	top := label + strings.Repeat(" ", gap) + position
	bar := components.NewProgressBar("", s.run.Progress()/100, true, cw).View()

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, top+"\n"+bar)
}

func (s *LearnScreen) renderLearning(w words.Word) string {
	var b strings.Builder
	b.WriteString(illustration(w.Image))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(w.English))
	if w.Transcript != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Transcript))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(w.Translation))
	return b.String()
}

func (s *LearnScreen) renderQuiz() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Choose the translation"))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	if s.choice.Revealed {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite, try again"))
		}
	}
	return b.String()
}

func (s *LearnScreen) renderText() string {
	direction := "Translate into English"
	if s.prompt.To == words.Russian {
		direction = "Translate into Russian"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(direction))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.prompt.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())

	switch {
	case s.answered:
		b.WriteString("\n\n")
		b.WriteString(theme.Correct.Render("Correct!"))
	case s.reveal != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("Correct answer: " + s.reveal))
	}
	return b.String()
}

func (s *LearnScreen) renderInterstitial(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render("Batch complete!"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim, fmt.Sprintf(
		"%d of %d batches done", s.run.BatchIndex(), s.run.TotalBatches())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Text, "Press Enter for the next words"))
	return b.String()
}

func renderTip(t coach.Tip, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Coach"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(t.Example))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(t.Translation))
	if t.Mnemonic != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(t.Mnemonic))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Render(b.String())
}

// illustration renders a word's image variant in text.
func illustration(img words.Image) string {
	switch img.Kind {
	case words.ImageEmoji:
		return img.Data
	case words.ImagePicture:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("[picture]")
	default:
		return defaultGlyph
	}
}

func renderQuitConfirm(width int, buttons components.Buttons) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim, "Words from finished batches stay learned."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons.View()))
	return b.String()
}

func centered(width int, c color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(c).
		Render(text)
}
