package session

// Phase is the drill mode applied to every word of a batch in turn.
type Phase int

const (
	PhaseLearning             Phase = iota // Term, translation and transcript revealed
	PhaseQuizNativeToForeign               // Russian prompt, English options
	PhaseQuizForeignToNative               // English prompt, Russian options
	PhaseTextInput                         // Typed translation, random direction
)

// phaseCount is the number of phases a batch goes through.
const phaseCount = 4

// String returns the phase's wire name, as journaled.
func (p Phase) String() string {
	switch p {
	case PhaseLearning:
		return "learning"
	case PhaseQuizNativeToForeign:
		return "quiz_native_to_foreign"
	case PhaseQuizForeignToNative:
		return "quiz_foreign_to_native"
	case PhaseTextInput:
		return "text_input"
	default:
		return "unknown"
	}
}

// Label is the short heading shown above the card.
func (p Phase) Label() string {
	switch p {
	case PhaseLearning:
		return "Learning"
	case PhaseQuizNativeToForeign:
		return "Quiz: RU → EN"
	case PhaseQuizForeignToNative:
		return "Quiz: EN → RU"
	case PhaseTextInput:
		return "Type the translation"
	default:
		return ""
	}
}

// IsQuiz reports whether p is one of the multiple-choice phases.
func (p Phase) IsQuiz() bool {
	return p == PhaseQuizNativeToForeign || p == PhaseQuizForeignToNative
}

// Valid reports whether p is one of the four drill phases.
func (p Phase) Valid() bool {
	return p >= PhaseLearning && p <= PhaseTextInput
}

// Step reports what an Advance or NextBatch call did.
type Step int

const (
	// StepNone means nothing moved (no active word, or a batch is
	// waiting for NextBatch).
	StepNone Step = iota
	// StepNextWord moved to the next word in the same phase.
	StepNextWord
	// StepNextPhase finished the phase and restarted the batch in the next one.
	StepNextPhase
	// StepBatchComplete finished text input for the last word of the batch.
	StepBatchComplete
	// StepNextBatch loaded the next batch in the learning phase.
	StepNextBatch
	// StepSessionComplete means every batch is done.
	StepSessionComplete
)

func (s Step) String() string {
	switch s {
	case StepNextWord:
		return "next_word"
	case StepNextPhase:
		return "next_phase"
	case StepBatchComplete:
		return "batch_complete"
	case StepNextBatch:
		return "next_batch"
	case StepSessionComplete:
		return "session_complete"
	default:
		return "none"
	}
}
