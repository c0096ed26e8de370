// Package learn is the drill screen: it renders the current word of a run
// and turns key presses into session steps.
package learn

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/drill"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
)

// LearnScreen drives one drill.Run.
type LearnScreen struct {
	d   *deps.Deps
	run *drill.Run
	gen uint64

	quiz     session.Quiz
	choice   components.MultiChoice
	prompt   session.TextPrompt
	input    components.TextInput
	answered bool // typed answer accepted, waiting to advance

	reveal    string
	revealSeq int

	// busy blocks input while a feedback delay runs.
	busy bool
	// saving is set while a completed batch is submitted; the run is not
	// touched by the view meanwhile.
	saving       bool
	interstitial bool
	confirmQuit  bool
	quitButtons  components.Buttons

	hint       string
	tip        *coach.Tip
	tipLoading bool

	expGained int
	synced    bool
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)
var _ screen.EscapeHandler = (*LearnScreen)(nil)

// New creates a LearnScreen for a run that has just been started.
func New(d *deps.Deps, run *drill.Run) *LearnScreen {
	return &LearnScreen{
		d:      d,
		run:    run,
		gen:    run.Generation(),
		synced: true,
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return s.prepare()
}

func (s *LearnScreen) Title() string {
	if s.run.Mode == drill.ModeReview {
		return "Review"
	}
	return "New words"
}

func (s *LearnScreen) HandlesEscape() bool { return true }

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
			{Key: "←→", Description: "Choose"},
		}
	case s.interstitial:
		return []layout.KeyHint{{Key: "Enter", Description: "Next batch"}}
	case s.busy || s.saving:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	switch s.run.Phase() {
	case session.PhaseLearning:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "P", Description: "Pronounce"},
		}
		if s.d.CoachEnabled() {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case session.PhaseTextInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

// current reports whether msgGen belongs to the run on screen and that run
// is still the newest one.
func (s *LearnScreen) current(msgGen uint64) bool {
	return msgGen == s.gen && !s.d.Drill.Stale(s.run)
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if !s.current(msg.gen) || !s.busy {
			return s, nil
		}
		s.busy = false
		return s, s.advance()

	case retryQuizMsg:
		if !s.current(msg.gen) || !s.busy {
			return s, nil
		}
		s.busy = false
		s.reshuffle()
		return s, nil

	case hideAnswerMsg:
		if s.current(msg.gen) && msg.seq == s.revealSeq {
			s.reveal = ""
		}
		return s, nil

	case batchSavedMsg:
		if !s.current(msg.gen) {
			return s, nil
		}
		return s.handleBatchSaved(msg.result)

	case pronouncedMsg:
		if !s.current(msg.gen) || !s.onWord(msg.wordID) {
			return s, nil
		}
		s.hint = ""
		if msg.err != nil {
			s.hint = "Pronunciation unavailable"
		}
		return s, nil

	case tipMsg:
		if !s.current(msg.gen) || !s.onWord(msg.wordID) {
			return s, nil
		}
		s.tipLoading = false
		if msg.err != nil {
			s.hint = "The coach could not explain this word"
			return s, nil
		}
		s.hint = ""
		s.tip = &msg.tip
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.inputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.d.Drill.Finish(context.Background(), s.run)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
			return s, nil
		}
		var pressed int
		var ok bool
		s.quitButtons, pressed, ok = s.quitButtons.Update(msg)
		if ok {
			s.confirmQuit = false
			if pressed == quitEnd {
				s.d.Drill.Finish(context.Background(), s.run)
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		return s, nil
	}

	if s.saving {
		return s, nil
	}

	if s.interstitial {
		switch key {
		case "enter", "space", " ":
			s.interstitial = false
			return s, s.prepare()
		case "esc":
			s.askQuit()
		}
		return s, nil
	}

	if key == "esc" {
		s.askQuit()
		return s, nil
	}
	if s.busy {
		return s, nil
	}

	switch phase := s.run.Phase(); {
	case phase == session.PhaseLearning:
		switch key {
		case "enter", "space", " ", "right", "n":
			return s, s.advance()
		case "p", "P":
			return s, s.pronounce()
		case "e", "E":
			return s, s.explain()
		}
		return s, nil

	case phase.IsQuiz():
		if i, ok := s.choice.Pick(key); ok {
			return s, s.choose(i)
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case phase == session.PhaseTextInput:
		if key == "enter" {
			return s, s.submitText()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Quit prompt buttons.
const (
	quitEnd = iota
	quitKeep
)

// askQuit opens the quit prompt focused on keeping the session.
func (s *LearnScreen) askQuit() {
	s.confirmQuit = true
	s.quitButtons = components.NewButtons(quitKeep, "Yes, end session", "No, keep going")
}

// prepare sets up the widgets for the current word.
func (s *LearnScreen) prepare() tea.Cmd {
	s.hint = ""
	s.tip = nil
	s.tipLoading = false
	s.reveal = ""
	s.answered = false

	switch phase := s.run.Phase(); {
	case phase.IsQuiz():
		q, ok := s.run.Quiz()
		if !ok {
			return nil
		}
		s.quiz = q
		s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Answer)
	case phase == session.PhaseTextInput:
		p, ok := s.run.TextPrompt()
		if !ok {
			return nil
		}
		s.prompt = p
		s.input = components.NewTextInput("Type the translation...", false, 40)
		return s.input.Init()
	}
	return nil
}

// reshuffle asks the current word again with fresh decoys and a new option
// order, so the revealed position gives nothing away.
func (s *LearnScreen) reshuffle() {
	q, ok := s.run.Quiz()
	if !ok {
		s.choice.Reset()
		return
	}
	s.quiz = q
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Answer)
}

// advance moves the run past the current word.
func (s *LearnScreen) advance() tea.Cmd {
	switch s.run.Advance() {
	case session.StepNextWord, session.StepNextPhase:
		return s.prepare()
	case session.StepBatchComplete:
		s.saving = true
		return s.saveBatch()
	}
	return nil
}

func (s *LearnScreen) saveBatch() tea.Cmd {
	run, gen, svc := s.run, s.gen, s.d.Drill
	return func() tea.Msg {
		return batchSavedMsg{gen: gen, result: svc.CompleteBatch(context.Background(), run)}
	}
}

func (s *LearnScreen) handleBatchSaved(res drill.BatchResult) (screen.Screen, tea.Cmd) {
	s.saving = false
	s.expGained += res.ExpGained
	if !res.Synced {
		s.synced = false
	}

	switch res.Step {
	case session.StepSessionComplete:
		result := summary.Result{
			Summary:   s.run.Summary(),
			ExpGained: s.expGained,
			Synced:    s.synced,
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(s.d, result)}
		}
	case session.StepNextBatch:
		s.interstitial = true
	}
	return s, nil
}

func (s *LearnScreen) choose(i int) tea.Cmd {
	correct := s.d.Drill.Choose(context.Background(), s.run, s.quiz, i)
	s.choice.Reveal(i)
	s.busy = true

	gen := s.gen
	if correct {
		return tea.Tick(s.d.Config.CorrectDelay, func(time.Time) tea.Msg { return advanceMsg{gen: gen} })
	}
	return tea.Tick(s.d.Config.WrongQuizDelay, func(time.Time) tea.Msg { return retryQuizMsg{gen: gen} })
}

func (s *LearnScreen) submitText() tea.Cmd {
	value := s.input.Value()
	if strings.TrimSpace(value) == "" {
		return nil
	}

	gen := s.gen
	if s.d.Drill.SubmitText(context.Background(), s.run, s.prompt, value) {
		s.input.Submit(true)
		s.answered = true
		s.reveal = ""
		s.busy = true
		return tea.Tick(s.d.Config.CorrectDelay, func(time.Time) tea.Msg { return advanceMsg{gen: gen} })
	}

	s.input.Reset()
	s.reveal = s.prompt.Expected
	s.revealSeq++
	seq := s.revealSeq
	return tea.Tick(s.d.Config.WrongTextReveal, func(time.Time) tea.Msg { return hideAnswerMsg{gen: gen, seq: seq} })
}

func (s *LearnScreen) pronounce() tea.Cmd {
	w, ok := s.run.Current()
	if !ok {
		return nil
	}
	if s.d.Audio == nil {
		s.hint = "Pronunciation unavailable"
		return nil
	}
	s.hint = "Playing..."
	audio, gen := s.d.Audio, s.gen
	return func() tea.Msg {
		return pronouncedMsg{gen: gen, wordID: w.ID, err: audio.Play(context.Background(), w)}
	}
}

func (s *LearnScreen) explain() tea.Cmd {
	w, ok := s.run.Current()
	if !ok || s.tipLoading || s.tip != nil {
		return nil
	}
	if !s.d.CoachEnabled() {
		s.hint = "Coach disabled"
		return nil
	}
	s.tipLoading = true
	s.hint = "Asking the coach..."
	tutor, gen := s.d.Coach, s.gen
	return func() tea.Msg {
		tip, err := tutor.Explain(context.Background(), w)
		return tipMsg{gen: gen, wordID: w.ID, tip: tip, err: err}
	}
}

func (s *LearnScreen) onWord(id int64) bool {
	if s.saving || s.interstitial {
		return false
	}
	w, ok := s.run.Current()
	return ok && w.ID == id
}

func (s *LearnScreen) inputActive() bool {
	return !s.saving && !s.interstitial && !s.confirmQuit && !s.busy &&
		s.run.Phase() == session.PhaseTextInput
}
