package learn

import (
	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/drill"
)

// Every message carries the generation of the run that scheduled it; the
// screen drops messages from any other run.

// advanceMsg fires when the feedback delay after a correct answer ends.
type advanceMsg struct {
	gen uint64
}

// retryQuizMsg fires when the wrong-answer reveal of a quiz ends.
type retryQuizMsg struct {
	gen uint64
}

// hideAnswerMsg hides the correct answer shown after a wrong typed answer.
type hideAnswerMsg struct {
	gen uint64
	seq int
}

// batchSavedMsg reports that a completed batch was submitted.
type batchSavedMsg struct {
	gen    uint64
	result drill.BatchResult
}

// pronouncedMsg reports the end of a pronunciation attempt.
type pronouncedMsg struct {
	gen    uint64
	wordID int64
	err    error
}

// tipMsg carries the word coach's answer.
type tipMsg struct {
	gen    uint64
	wordID int64
	tip    coach.Tip
	err    error
}
