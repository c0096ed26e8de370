package session

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/vocabdrill/internal/words"
)

func testWords(n int) []words.Word {
	pairs := [][2]string{
		{"apple", "яблоко"}, {"river", "река"}, {"window", "окно"}, {"cloud", "облако"},
		{"bread", "хлеб"}, {"street", "улица"}, {"friend", "друг"}, {"summer", "лето"},
	}
	out := make([]words.Word, n)
	for i := range out {
		p := pairs[i%len(pairs)]
		eng, rus := p[0], p[1]
		if i >= len(pairs) {
			eng = fmt.Sprintf("%s%d", eng, i)
			rus = fmt.Sprintf("%s%d", rus, i)
		}
		out[i] = words.Word{ID: int64(i + 1), English: eng, Translation: rus}
	}
	return out
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newTestSession(n, batchSize int) *Session {
	return New(testWords(n), Options{BatchSize: batchSize, Rand: seeded(1)})
}

func TestNew_DefaultBatchSize(t *testing.T) {
	s := New(testWords(7), Options{})
	if got := len(s.Batch()); got != DefaultBatchSize {
		t.Errorf("len(Batch) = %d, want %d", got, DefaultBatchSize)
	}
	if s.TotalBatches() != 2 {
		t.Errorf("TotalBatches = %d, want 2", s.TotalBatches())
	}
	if s.Phase() != PhaseLearning {
		t.Errorf("Phase = %v, want learning", s.Phase())
	}
}

func TestAdvance_PhaseOrder(t *testing.T) {
	s := newTestSession(2, 5)

	want := []struct {
		step  Step
		phase Phase
	}{
		{StepNextWord, PhaseLearning},
		{StepNextPhase, PhaseQuizNativeToForeign},
		{StepNextWord, PhaseQuizNativeToForeign},
		{StepNextPhase, PhaseQuizForeignToNative},
		{StepNextWord, PhaseQuizForeignToNative},
		{StepNextPhase, PhaseTextInput},
		{StepNextWord, PhaseTextInput},
		{StepBatchComplete, PhaseTextInput},
	}
	for i, w := range want {
		step := s.Advance()
		if step != w.step {
			t.Fatalf("advance %d: step = %v, want %v", i, step, w.step)
		}
		if s.Phase() != w.phase {
			t.Fatalf("advance %d: phase = %v, want %v", i, s.Phase(), w.phase)
		}
	}

	if !s.BatchPending() {
		t.Fatal("expected batch pending")
	}
	if step := s.Advance(); step != StepNone {
		t.Errorf("advance while pending = %v, want none", step)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current should be empty while batch pending")
	}
	if step := s.NextBatch(); step != StepSessionComplete {
		t.Errorf("NextBatch = %v, want session_complete", step)
	}
	if !s.Done() {
		t.Error("expected session done")
	}
}

func TestAdvance_PhaseResetsWordIndex(t *testing.T) {
	s := newTestSession(3, 3)
	s.Advance()
	s.Advance()
	if s.WordIndex() != 2 {
		t.Fatalf("WordIndex = %d, want 2", s.WordIndex())
	}
	s.Advance()
	if s.WordIndex() != 0 {
		t.Errorf("WordIndex after phase change = %d, want 0", s.WordIndex())
	}
}

func TestNextBatch_LoadsNextBatchInLearning(t *testing.T) {
	s := newTestSession(7, 5)
	completeBatch(t, s)

	if step := s.NextBatch(); step != StepNextBatch {
		t.Fatalf("NextBatch = %v, want next_batch", step)
	}
	if s.BatchIndex() != 1 {
		t.Errorf("BatchIndex = %d, want 1", s.BatchIndex())
	}
	if s.Phase() != PhaseLearning {
		t.Errorf("Phase = %v, want learning", s.Phase())
	}
	batch := s.Batch()
	if len(batch) != 2 || batch[0].ID != 6 || batch[1].ID != 7 {
		t.Errorf("second batch = %v, want ids 6,7", words.IDs(batch))
	}
}

func TestNextBatch_WithoutPendingIsNoop(t *testing.T) {
	s := newTestSession(7, 5)
	if step := s.NextBatch(); step != StepNone {
		t.Errorf("NextBatch = %v, want none", step)
	}
	if s.BatchIndex() != 0 {
		t.Errorf("BatchIndex = %d, want 0", s.BatchIndex())
	}
}

// completeBatch advances through all four phases of the current batch.
func completeBatch(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 4*len(s.Batch()); i++ {
		step := s.Advance()
		if step == StepBatchComplete {
			if i != 4*len(s.Batch())-1 {
				t.Fatalf("batch completed early at advance %d", i)
			}
			return
		}
		if step == StepNone {
			t.Fatalf("advance %d did nothing", i)
		}
	}
	t.Fatal("batch never completed")
}

func TestInvariants_HoldThroughoutSession(t *testing.T) {
	for _, tc := range []struct{ n, size int }{{1, 5}, {5, 5}, {7, 5}, {12, 3}, {10, 1}} {
		t.Run(fmt.Sprintf("%d_words_batch_%d", tc.n, tc.size), func(t *testing.T) {
			s := newTestSession(tc.n, tc.size)
			batches := 0
			for steps := 0; !s.Done(); steps++ {
				if steps > 10000 {
					t.Fatal("session did not terminate")
				}
				if !s.BatchPending() {
					if s.WordIndex() < 0 || s.WordIndex() >= len(s.Batch()) {
						t.Fatalf("WordIndex %d outside [0,%d)", s.WordIndex(), len(s.Batch()))
					}
				}
				if !s.Phase().Valid() {
					t.Fatalf("invalid phase %d", s.Phase())
				}

				switch s.Advance() {
				case StepBatchComplete:
					before := s.BatchIndex()
					s.NextBatch()
					if s.BatchIndex() != before+1 {
						t.Fatalf("BatchIndex %d -> %d, want +1", before, s.BatchIndex())
					}
					batches++
				case StepNone:
					t.Fatal("Advance made no progress on an active session")
				}
			}
			if batches != s.TotalBatches() {
				t.Errorf("completed %d batches, want %d", batches, s.TotalBatches())
			}
			if s.BatchIndex()*tc.size < tc.n {
				t.Errorf("terminated with BatchIndex %d", s.BatchIndex())
			}
		})
	}
}

func TestEmptySession_IsNoop(t *testing.T) {
	s := New(nil, Options{Rand: seeded(1)})

	if _, ok := s.Current(); ok {
		t.Error("Current on empty session should report no word")
	}
	if step := s.Advance(); step != StepNone {
		t.Errorf("Advance = %v, want none", step)
	}
	if _, ok := s.Quiz(); ok {
		t.Error("Quiz on empty session should be unavailable")
	}
	if !s.Done() {
		t.Error("empty session should be done")
	}
	if s.Progress() != 100 {
		t.Errorf("Progress = %v, want 100", s.Progress())
	}
}

func TestRecordIncorrect_Deduplicates(t *testing.T) {
	s := newTestSession(3, 3)
	s.RecordIncorrect()
	s.RecordIncorrect()
	s.Advance()
	s.RecordIncorrect()

	got := s.Mistakes()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Mistakes = %v, want [1 2]", got)
	}
}

func TestProgress(t *testing.T) {
	s := newTestSession(10, 5) // two batches, eight phase slots

	// First word of the learning phase of batch 0: (0 + 1/5) / 8.
	if got, want := s.Progress(), 0.2/8*100; !approx(got, want) {
		t.Errorf("Progress = %v, want %v", got, want)
	}

	for i := 0; i < 5; i++ {
		s.Advance()
	}
	// First word of the first quiz: (1 + 1/5) / 8.
	if got, want := s.Progress(), 1.2/8*100; !approx(got, want) {
		t.Errorf("Progress = %v, want %v", got, want)
	}

	completeRest(s)
	s.NextBatch()
	// Batch 1, learning, first word: (4 + 1/5) / 8.
	if got, want := s.Progress(), 4.2/8*100; !approx(got, want) {
		t.Errorf("Progress = %v, want %v", got, want)
	}
}

func completeRest(s *Session) {
	for s.Advance() != StepBatchComplete {
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestSummary(t *testing.T) {
	s := New(testWords(3), Options{Review: true, Rand: seeded(3)})
	s.RecordIncorrect()
	completeRest(s)
	s.NextBatch()

	sum := s.Summary()
	if !sum.Review {
		t.Error("expected review summary")
	}
	if sum.Words != 3 || sum.BatchesCompleted != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.Mistakes) != 1 || sum.Mistakes[0].English != "apple" {
		t.Errorf("Mistakes = %v, want [apple]", sum.Mistakes)
	}
}

func TestPhaseLabels(t *testing.T) {
	tests := []struct {
		phase Phase
		name  string
		label string
	}{
		{PhaseLearning, "learning", "Learning"},
		{PhaseQuizNativeToForeign, "quiz_native_to_foreign", "Quiz: RU → EN"},
		{PhaseQuizForeignToNative, "quiz_foreign_to_native", "Quiz: EN → RU"},
		{PhaseTextInput, "text_input", "Type the translation"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.phase, got, tt.name)
		}
		if got := tt.phase.Label(); got != tt.label {
			t.Errorf("%d.Label() = %q, want %q", tt.phase, got, tt.label)
		}
	}
	if Phase(9).Valid() {
		t.Error("Phase(9) should be invalid")
	}
}

func TestSummary_Variants(t *testing.T) {
	learn := Summary{}
	review := Summary{Review: true}
	if learn.Title() != "Awesome!" || review.Title() != "Great review!" {
		t.Errorf("titles = %q, %q", learn.Title(), review.Title())
	}
	if learn.Subtitle() == review.Subtitle() {
		t.Error("learn and review subtitles should differ")
	}
	if learn.Accuracy() != 1 {
		t.Errorf("Accuracy with no answers = %v, want 1", learn.Accuracy())
	}
}
