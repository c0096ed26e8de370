package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/store"
)

var now = time.Date(2026, 10, 18, 15, 0, 0, 0, time.Local)

func withQuota(q int) *int { return &q }

func learned(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

func TestLearnedToday(t *testing.T) {
	p := profile.Profile{Learned: learned(7), LastLearningDate: profile.DateOf(now)}
	assert.Equal(t, 7, LearnedToday(p, now))

	p.LastLearningDate = profile.DateOf(now.AddDate(0, 0, -1))
	assert.Equal(t, 0, LearnedToday(p, now))

	p.LastLearningDate = ""
	assert.Equal(t, 0, LearnedToday(p, now))
}

func TestRemaining(t *testing.T) {
	_, ok := Remaining(profile.Profile{}, now)
	assert.False(t, ok)

	p := profile.Profile{WordsPerDay: withQuota(10), Learned: learned(4), LastLearningDate: profile.DateOf(now)}
	n, ok := Remaining(p, now)
	assert.True(t, ok)
	assert.Equal(t, 6, n)
}

func TestCompute(t *testing.T) {
	today := profile.DateOf(now)
	tests := []struct {
		name           string
		p              profile.Profile
		trainings      int
		wantDone       int
		wantTarget     int
		wantWords      int
		wantTrainings  int
		wantStatus     Status
		wantPercent    float64
		wantMsgContain string
	}{
		{
			name:           "no quota uses default for display",
			p:              profile.Profile{},
			wantTarget:     5,
			wantWords:      3,
			wantTrainings:  2,
			wantStatus:     StatusNoQuota,
			wantMsgContain: "Choose how many words",
		},
		{
			name:           "fresh day",
			p:              profile.Profile{WordsPerDay: withQuota(10), Learned: learned(20), LastLearningDate: "2026-10-01"},
			wantTarget:     10,
			wantWords:      6,
			wantTrainings:  4,
			wantStatus:     StatusInProgress,
			wantMsgContain: "Words: 0/6 • Trainings: 0/4",
		},
		{
			name:           "quota five all learned",
			p:              profile.Profile{WordsPerDay: withQuota(5), Learned: learned(5), LastLearningDate: today},
			wantDone:       5,
			wantTarget:     5,
			wantWords:      3,
			wantTrainings:  2,
			wantStatus:     StatusWordsDone,
			wantPercent:    100,
			wantMsgContain: "Trainings left: 2",
		},
		{
			name:           "everything done",
			p:              profile.Profile{WordsPerDay: withQuota(5), Learned: learned(3), LastLearningDate: today},
			trainings:      2,
			wantDone:       5,
			wantTarget:     5,
			wantWords:      3,
			wantTrainings:  2,
			wantStatus:     StatusAllDone,
			wantPercent:    100,
			wantMsgContain: "Everything for today is done",
		},
		{
			name:           "quota one keeps one training",
			p:              profile.Profile{WordsPerDay: withQuota(1)},
			wantTarget:     1,
			wantWords:      0,
			wantTrainings:  1,
			wantStatus:     StatusWordsDone,
			wantMsgContain: "Trainings left: 1",
		},
		{
			name:           "one word left",
			p:              profile.Profile{WordsPerDay: withQuota(5), Learned: learned(2), LastLearningDate: today},
			trainings:      2,
			wantDone:       4,
			wantTarget:     5,
			wantWords:      3,
			wantTrainings:  2,
			wantStatus:     StatusInProgress,
			wantPercent:    80,
			wantMsgContain: "Just 1 word left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(tt.p, now, Options{DefaultQuota: 5, TrainingsToday: tt.trainings})
			assert.Equal(t, tt.wantDone, st.Done)
			assert.Equal(t, tt.wantTarget, st.Target)
			assert.Equal(t, tt.wantWords, st.WordsTarget)
			assert.Equal(t, tt.wantTrainings, st.TrainingsTarget)
			assert.Equal(t, tt.wantStatus, st.Status)
			assert.InDelta(t, tt.wantPercent, st.Percent, 1e-9)
			assert.Contains(t, st.Message(), tt.wantMsgContain)
		})
	}
}

func TestCompute_StreakAndTrainingsFromProfile(t *testing.T) {
	p := profile.Profile{Learned: learned(12), Streak: 9}
	st := Compute(p, now, Options{})
	assert.Equal(t, 9, st.Streak)
	assert.Equal(t, 12, st.TotalLearned)
	assert.Equal(t, 2, st.Trainings)
	assert.Equal(t, StatusNoQuota, st.Status)
	assert.Zero(t, st.Percent)
}

func TestReviewSuggested(t *testing.T) {
	assert.False(t, Stats{Status: StatusInProgress}.ReviewSuggested())
	assert.True(t, Stats{Status: StatusInProgress, LearnedToday: 1}.ReviewSuggested())
	assert.True(t, Stats{Status: StatusWordsDone}.ReviewSuggested())
}

func TestTrainingsToday(t *testing.T) {
	records := []store.SessionRecord{
		{Mode: "review", EndedAt: now.Add(-time.Hour)},
		{Mode: "review", EndedAt: now.AddDate(0, 0, -1)},
		{Mode: "review"}, // never ended
		{Mode: "learn", EndedAt: now},
		{Mode: "review", EndedAt: now},
	}
	assert.Equal(t, 2, TrainingsToday(records, now))
}
