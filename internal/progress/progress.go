// Package progress derives the daily-goal and streak display from a
// learner's profile.
package progress

import (
	"fmt"
	"time"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/store"
)

// TrainingGroupSize is how many learned words count as one training.
const TrainingGroupSize = 5

// trainingSharePercent is the part of the daily quota shown as trainings.
const trainingSharePercent = 40

// Status classifies today's progress for the message under the bar.
type Status int

const (
	StatusNoQuota Status = iota
	StatusInProgress
	StatusWordsDone // words sub-target met, trainings remaining
	StatusAllDone
)

func (s Status) String() string {
	switch s {
	case StatusNoQuota:
		return "no_quota"
	case StatusInProgress:
		return "in_progress"
	case StatusWordsDone:
		return "words_done"
	case StatusAllDone:
		return "all_done"
	default:
		return "unknown"
	}
}

// Stats is the presentational summary of a profile.
type Stats struct {
	LearnedToday int
	TotalLearned int
	Trainings    int
	Streak       int

	Quota    int
	QuotaSet bool

	WordsTarget     int
	TrainingsTarget int
	TrainingsToday  int

	Done    int
	Target  int
	Percent float64
	Status  Status
}

// Options tune Compute.
type Options struct {
	// DefaultQuota is displayed when the learner has not chosen one.
	DefaultQuota int
	// TrainingsToday is the number of review sessions finished today.
	TrainingsToday int
}

// LearnedToday counts the learner's words for today: the whole learned set
// when the last activity was today (local calendar), otherwise zero.
func LearnedToday(p profile.Profile, now time.Time) int {
	if p.LastLearningDate != profile.DateOf(now) {
		return 0
	}
	return p.LearnedCount()
}

// Remaining is how many new words the learner may still take today.
// ok is false when no quota is set.
func Remaining(p profile.Profile, now time.Time) (n int, ok bool) {
	quota, ok := p.Quota()
	if !ok {
		return 0, false
	}
	return quota - LearnedToday(p, now), true
}

// Compute derives Stats from p as of now. The streak is copied from the
// profile; the backend owns it.
func Compute(p profile.Profile, now time.Time, opts Options) Stats {
	st := Stats{
		LearnedToday:   LearnedToday(p, now),
		TotalLearned:   p.LearnedCount(),
		Streak:         p.Streak,
		TrainingsToday: opts.TrainingsToday,
	}
	st.Trainings = st.TotalLearned / TrainingGroupSize

	st.Quota, st.QuotaSet = p.Quota()
	if !st.QuotaSet {
		st.Quota = opts.DefaultQuota
	}

	if st.Quota > 0 {
		st.TrainingsTarget = max(1, st.Quota*trainingSharePercent/100)
		st.WordsTarget = st.Quota - st.TrainingsTarget
	}
	st.Target = st.WordsTarget + st.TrainingsTarget
	st.Done = st.LearnedToday + st.TrainingsToday
	if st.Target > 0 {
		st.Percent = min(100, float64(st.Done)/float64(st.Target)*100)
	}

	switch {
	case !st.QuotaSet || st.Target == 0:
		st.Status = StatusNoQuota
	case st.LearnedToday >= st.WordsTarget && st.TrainingsToday >= st.TrainingsTarget:
		st.Status = StatusAllDone
	case st.LearnedToday >= st.WordsTarget:
		st.Status = StatusWordsDone
	default:
		st.Status = StatusInProgress
	}
	return st
}

// Message is the line shown under the progress bar.
func (s Stats) Message() string {
	switch s.Status {
	case StatusNoQuota:
		return "Choose how many words a day you want to learn first"
	case StatusAllDone:
		return "Excellent! Everything for today is done. You can review what you learned"
	case StatusWordsDone:
		return fmt.Sprintf("Words learned (%d/%d)! Trainings left: %d",
			s.LearnedToday, s.WordsTarget, s.TrainingsTarget-s.TrainingsToday)
	}

	remainingWords := s.WordsTarget - s.LearnedToday
	remainingTrainings := s.TrainingsTarget - s.TrainingsToday
	if remainingWords == 1 && remainingTrainings <= 0 {
		return "Just 1 word left to learn!"
	}
	return fmt.Sprintf("Words: %d/%d • Trainings: %d/%d",
		s.LearnedToday, s.WordsTarget, s.TrainingsToday, s.TrainingsTarget)
}

// ReviewSuggested reports whether the home screen should point at review.
func (s Stats) ReviewSuggested() bool {
	return s.Status == StatusAllDone || s.Status == StatusWordsDone || s.LearnedToday > 0
}

// TrainingsToday counts review sessions in records that ended on now's
// calendar day.
func TrainingsToday(records []store.SessionRecord, now time.Time) int {
	today := profile.DateOf(now)
	n := 0
	for _, r := range records {
		if r.Mode == "review" && !r.EndedAt.IsZero() && profile.DateOf(r.EndedAt) == today {
			n++
		}
	}
	return n
}
