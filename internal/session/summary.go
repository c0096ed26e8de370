package session

import "github.com/abhisek/vocabdrill/internal/words"

// Summary holds the data displayed on the completion screen.
type Summary struct {
	Review           bool
	Words            int
	BatchesCompleted int
	Attempts         int
	Correct          int
	Mistakes         []words.Word
}

// Accuracy returns the share of scored answers that were right, or 1 when
// nothing was scored.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 1
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Title is the completion screen heading.
func (s Summary) Title() string {
	if s.Review {
		return "Great review!"
	}
	return "Awesome!"
}

// Subtitle is the line under the completion heading.
func (s Summary) Subtitle() string {
	if s.Review {
		return "You successfully reviewed learned words"
	}
	return "You learned new words and checked your knowledge"
}

// Summary reports the session so far.
func (s *Session) Summary() Summary {
	byID := make(map[int64]words.Word, len(s.all))
	for _, w := range s.all {
		byID[w.ID] = w
	}
	var mistakes []words.Word
	for _, id := range s.mistakes {
		mistakes = append(mistakes, byID[id])
	}

	completed := s.batchIndex
	if s.batchPending {
		completed++
	}
	return Summary{
		Review:           s.review,
		Words:            len(s.all),
		BatchesCompleted: completed,
		Attempts:         s.attempts,
		Correct:          s.correct,
		Mistakes:         mistakes,
	}
}
