package profile

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// dateLayout is the backend's calendar date format.
const dateLayout = "2006-01-02"

// Date is a local calendar day in YYYY-MM-DD form. The zero value means
// "never" and encodes as JSON null.
type Date string

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts null, a date, or a timestamp (truncated to the day).
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	*d = Date(s)
	return nil
}

// Profile mirrors the backend user record.
type Profile struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Exp        int    `json:"exp"`

	// WordsPerDay is the daily quota; nil until the learner picks one.
	WordsPerDay *int `json:"words_per_day"`

	Learned []int64 `json:"eng_learned_words"`
	Skipped []int64 `json:"eng_skipped_words"`

	LastLearningDate Date `json:"last_learning_date"`
	Streak           int  `json:"current_streak"`
}

// Local returns the non-persisted fallback profile used when the backend is
// unreachable.
func Local(id int64, username, firstName, lastName string) Profile {
	if firstName == "" {
		firstName = "User"
	}
	return Profile{
		TelegramID: id,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Learned:    []int64{},
		Skipped:    []int64{},
	}
}

// Quota returns the daily quota and whether one is set.
func (p Profile) Quota() (int, bool) {
	if p.WordsPerDay == nil || *p.WordsPerDay <= 0 {
		return 0, false
	}
	return *p.WordsPerDay, true
}

// DisplayName returns the name shown in greetings.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName)
	if name != "" {
		return name
	}
	if p.Username != "" {
		return p.Username
	}
	return "User"
}

// HasLearned reports whether id is in the learned set.
func (p Profile) HasLearned(id int64) bool {
	return slices.Contains(p.Learned, id)
}

// LearnedCount returns the number of distinct learned words.
func (p Profile) LearnedCount() int {
	return len(p.Learned)
}

// Exclusions returns learned and skipped ids, the words a fresh batch must
// not contain.
func (p Profile) Exclusions() []int64 {
	out := make([]int64, 0, len(p.Learned)+len(p.Skipped))
	out = append(out, p.Learned...)
	return union(out, p.Skipped)
}

// RecentLearned returns up to n of the most recently learned ids.
func (p Profile) RecentLearned(n int) []int64 {
	if n <= 0 || len(p.Learned) == 0 {
		return nil
	}
	start := max(len(p.Learned)-n, 0)
	return slices.Clone(p.Learned[start:])
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	c := p
	c.Learned = slices.Clone(p.Learned)
	c.Skipped = slices.Clone(p.Skipped)
	if p.WordsPerDay != nil {
		q := *p.WordsPerDay
		c.WordsPerDay = &q
	}
	return c
}

// withLearned returns p with ids unioned into the learned set and the
// last-activity date set to today.
func (p Profile) withLearned(ids []int64, today Date) Profile {
	c := p.Clone()
	c.Learned = union(c.Learned, ids)
	c.LastLearningDate = today
	return c
}

// union appends the members of add not already in set, preserving order.
func union(set, add []int64) []int64 {
	seen := make(map[int64]struct{}, len(set)+len(add))
	out := set[:0:0]
	for _, id := range set {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range add {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
