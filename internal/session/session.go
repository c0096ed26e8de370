// Package session is the learning-session state machine: batching, phase
// transitions, answer scoring and quiz construction. It has no I/O; the
// drill service and the learn screen drive it.
package session

import (
	"math/rand/v2"

	"github.com/abhisek/vocabdrill/internal/words"
)

// DefaultBatchSize is the number of words drilled together.
const DefaultBatchSize = 5

// Options configure a new Session.
type Options struct {
	// BatchSize defaults to DefaultBatchSize when not positive.
	BatchSize int

	// Review sessions re-present learned words and never report them as
	// newly learned.
	Review bool

	// Generation identifies the session among all sessions started by the
	// process. Delayed messages carry it so stale ones can be dropped.
	Generation uint64

	// Rand drives decoy selection, option shuffling and text direction.
	// Nil uses a randomly seeded source.
	Rand *rand.Rand
}

// Session tracks one run through a word list.
type Session struct {
	all        []words.Word
	batchSize  int
	review     bool
	generation uint64
	rng        *rand.Rand

	batchIndex int
	batch      []words.Word
	wordIndex  int
	phase      Phase

	// batchPending is set between StepBatchComplete and NextBatch.
	batchPending bool

	mistakes    []int64
	mistakeSeen map[int64]bool
	attempts    int
	correct     int
}

// New creates a session over ws and loads the first batch.
func New(ws []words.Word, opts Options) *Session {
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		all:         append([]words.Word(nil), ws...),
		batchSize:   size,
		review:      opts.Review,
		generation:  opts.Generation,
		rng:         rng,
		mistakeSeen: make(map[int64]bool),
	}
	s.loadBatch()
	return s
}

func (s *Session) loadBatch() {
	start := s.batchIndex * s.batchSize
	end := min(start+s.batchSize, len(s.all))
	if start >= end {
		s.batch = nil
	} else {
		s.batch = s.all[start:end]
	}
	s.wordIndex = 0
	s.phase = PhaseLearning
	s.batchPending = false
}

// Review reports whether this is a review session.
func (s *Session) Review() bool { return s.review }

// Generation returns the generation the session was created with.
func (s *Session) Generation() uint64 { return s.generation }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// BatchIndex returns the zero-based index of the current batch.
func (s *Session) BatchIndex() int { return s.batchIndex }

// WordIndex returns the position of the current word in its batch.
func (s *Session) WordIndex() int { return s.wordIndex }

// Batch returns the words of the current batch.
func (s *Session) Batch() []words.Word {
	return append([]words.Word(nil), s.batch...)
}

// Words returns every word of the session.
func (s *Session) Words() []words.Word {
	return append([]words.Word(nil), s.all...)
}

// TotalBatches returns the number of batches the word list splits into.
func (s *Session) TotalBatches() int {
	return (len(s.all) + s.batchSize - 1) / s.batchSize
}

// BatchPending reports whether the current batch finished and awaits
// NextBatch.
func (s *Session) BatchPending() bool { return s.batchPending }

// Done reports whether every batch has been completed.
func (s *Session) Done() bool {
	return s.batchIndex*s.batchSize >= len(s.all)
}

// Current returns the word being drilled. ok is false when there is none,
// in which case callers render nothing.
func (s *Session) Current() (w words.Word, ok bool) {
	if s.Done() || s.batchPending || s.wordIndex < 0 || s.wordIndex >= len(s.batch) {
		return words.Word{}, false
	}
	return s.batch[s.wordIndex], true
}

// Advance moves past the current word. The end of a batch moves to the next
// phase; the end of text input yields StepBatchComplete, after which the
// caller reports the batch and calls NextBatch.
func (s *Session) Advance() Step {
	if _, ok := s.Current(); !ok {
		return StepNone
	}

	s.wordIndex++
	if s.wordIndex < len(s.batch) {
		return StepNextWord
	}

	s.wordIndex = 0
	if s.phase == PhaseTextInput {
		s.batchPending = true
		return StepBatchComplete
	}
	s.phase++
	return StepNextPhase
}

// NextBatch leaves a completed batch. It returns StepNextBatch when another
// batch was loaded and StepSessionComplete when none remain. Called without
// a pending batch it does nothing.
func (s *Session) NextBatch() Step {
	if !s.batchPending {
		return StepNone
	}
	s.batchIndex++
	s.loadBatch()
	if s.Done() {
		return StepSessionComplete
	}
	return StepNextBatch
}

// RecordIncorrect adds the current word to the session's mistakes.
func (s *Session) RecordIncorrect() {
	w, ok := s.Current()
	if !ok {
		return
	}
	if !s.mistakeSeen[w.ID] {
		s.mistakeSeen[w.ID] = true
		s.mistakes = append(s.mistakes, w.ID)
	}
}

func (s *Session) score(correct bool) {
	s.attempts++
	if correct {
		s.correct++
	} else {
		s.RecordIncorrect()
	}
}

// Mistakes returns the ids of words answered wrongly at least once, in the
// order the first mistake happened.
func (s *Session) Mistakes() []int64 {
	return append([]int64(nil), s.mistakes...)
}

// Progress returns the overall completion percentage of the session,
// counting each phase of each batch as an equal share.
func (s *Session) Progress() float64 {
	total := s.TotalBatches()
	if total == 0 || s.Done() {
		return 100
	}
	if s.batchPending {
		return float64(s.batchIndex+1) / float64(total) * 100
	}
	if len(s.batch) == 0 {
		return 0
	}
	within := float64(s.wordIndex+1) / float64(len(s.batch))
	done := float64(s.batchIndex*phaseCount+int(s.phase)) + within
	return done / float64(total*phaseCount) * 100
}
