// Package apitest provides an in-memory vocabulary backend for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// User is the backend's user record.
type User struct {
	TelegramID       int64   `json:"telegram_id"`
	Username         string  `json:"username,omitempty"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name,omitempty"`
	Exp              int     `json:"exp"`
	WordsPerDay      *int    `json:"words_per_day"`
	Learned          []int64 `json:"eng_learned_words"`
	Skipped          []int64 `json:"eng_skipped_words"`
	LastLearningDate *string `json:"last_learning_date"`
	Streak           int     `json:"current_streak"`
}

// Word is the backend's word record.
type Word struct {
	ID         int64  `json:"id"`
	Eng        string `json:"eng"`
	Rus        string `json:"rus"`
	Transcript string `json:"transcript,omitempty"`
	ImageData  string `json:"image_data,omitempty"`
	SoundData  any    `json:"sound_data,omitempty"`
}

// Backend is a fake of the vocabulary REST API. Fail* fields force the
// matching endpoint to answer 500.
type Backend struct {
	mu    sync.Mutex
	Users map[int64]*User
	Words []Word

	FailGet    bool
	FailCreate bool
	FailSave   bool
	FailLearn  bool
	FailRandom bool
	FailByIDs  bool

	// Calls records "METHOD path?query" for every request.
	Calls []string

	// LearnCalls records each learn-words payload.
	LearnCalls [][]int64

	server *httptest.Server
}

// New starts a backend serving under /api.
func New(words ...Word) *Backend {
	b := &Backend{Users: make(map[int64]*User), Words: words}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

// URL returns the API base URL.
func (b *Backend) URL() string {
	return b.server.URL + "/api"
}

// Close stops the server.
func (b *Backend) Close() {
	b.server.Close()
}

// AddUser stores u.
func (b *Backend) AddUser(u User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.Learned == nil {
		u.Learned = []int64{}
	}
	if u.Skipped == nil {
		u.Skipped = []int64{}
	}
	b.Users[u.TelegramID] = &u
}

// User returns a copy of the stored user.
func (b *Backend) User(id int64) (User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.Users[id]
	if !ok {
		return User{}, false
	}
	c := *u
	c.Learned = slices.Clone(u.Learned)
	return c, true
}

// CallCount returns the number of recorded calls with the given prefix.
func (b *Backend) CallCount(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	call := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		call += "?" + r.URL.RawQuery
	}
	b.Calls = append(b.Calls, call)

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api"), "/"), "/")

	switch {
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "users":
		b.createUser(w, r)
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "users":
		b.getUser(w, parts[1])
	case r.Method == http.MethodPut && len(parts) == 2 && parts[0] == "users":
		b.putUser(w, r, parts[1])
	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "users" && parts[2] == "stats":
		b.userStats(w, parts[1])
	case r.Method == http.MethodPost && len(parts) == 3 && parts[0] == "users" && parts[2] == "learn-words":
		b.learnWords(w, r, parts[1])
	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "words" && parts[1] == "random":
		b.randomWords(w, r, parts[2])
	case r.Method == http.MethodPost && len(parts) == 2 && parts[0] == "words" && parts[1] == "by-ids":
		b.wordsByIDs(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	if b.FailCreate {
		http.Error(w, "create failed", http.StatusInternalServerError)
		return
	}
	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.Learned = []int64{}
	u.Skipped = []int64{}
	b.Users[u.TelegramID] = &u
	writeJSON(w, u)
}

func (b *Backend) getUser(w http.ResponseWriter, rawID string) {
	if b.FailGet {
		http.Error(w, "get failed", http.StatusInternalServerError)
		return
	}
	id, _ := strconv.ParseInt(rawID, 10, 64)
	u, ok := b.Users[id]
	if !ok {
		http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, u)
}

func (b *Backend) putUser(w http.ResponseWriter, r *http.Request, rawID string) {
	if b.FailSave {
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	id, _ := strconv.ParseInt(rawID, 10, 64)
	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.TelegramID = id
	b.Users[id] = &u
	writeJSON(w, u)
}

func (b *Backend) learnWords(w http.ResponseWriter, r *http.Request, rawID string) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.LearnCalls = append(b.LearnCalls, ids)
	if b.FailLearn {
		http.Error(w, "learn failed", http.StatusInternalServerError)
		return
	}
	id, _ := strconv.ParseInt(rawID, 10, 64)
	u, ok := b.Users[id]
	if !ok {
		http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
		return
	}
	added := 0
	for _, wid := range ids {
		if !slices.Contains(u.Learned, wid) {
			u.Learned = append(u.Learned, wid)
			added++
		}
	}
	if u.Streak == 0 {
		u.Streak = 1
	}
	writeJSON(w, map[string]any{
		"success":        true,
		"learned_words":  u.Learned,
		"new_words":      added,
		"exp_gained":     added * 10,
		"current_streak": u.Streak,
	})
}

func (b *Backend) userStats(w http.ResponseWriter, rawID string) {
	id, _ := strconv.ParseInt(rawID, 10, 64)
	u, ok := b.Users[id]
	if !ok {
		http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
		return
	}
	learnedToday := 0
	if u.LastLearningDate != nil && *u.LastLearningDate == time.Now().Format(time.DateOnly) {
		learnedToday = len(u.Learned)
	}
	writeJSON(w, map[string]any{
		"streak":         u.Streak,
		"total_words":    len(u.Learned),
		"training_count": len(u.Learned) / 5,
		"learned_today":  learnedToday,
		"words_per_day":  u.WordsPerDay,
	})
}

func (b *Backend) randomWords(w http.ResponseWriter, r *http.Request, rawCount string) {
	if b.FailRandom {
		http.Error(w, "random failed", http.StatusInternalServerError)
		return
	}
	count, err := strconv.Atoi(rawCount)
	if err != nil || count <= 0 {
		http.Error(w, "bad count", http.StatusBadRequest)
		return
	}
	exclude := map[int64]bool{}
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			id, _ := strconv.ParseInt(s, 10, 64)
			exclude[id] = true
		}
	}
	out := []Word{}
	for _, word := range b.Words {
		if len(out) == count {
			break
		}
		if !exclude[word.ID] {
			out = append(out, word)
		}
	}
	writeJSON(w, out)
}

func (b *Backend) wordsByIDs(w http.ResponseWriter, r *http.Request) {
	if b.FailByIDs {
		http.Error(w, "by-ids failed", http.StatusInternalServerError)
		return
	}
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out := []Word{}
	// Reverse catalogue order: callers must not rely on input order.
	for i := len(b.Words) - 1; i >= 0; i-- {
		if slices.Contains(body.IDs, b.Words[i].ID) {
			out = append(out, b.Words[i])
		}
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// SampleWords returns n words with ids 1..n.
func SampleWords(n int) []Word {
	pairs := [][2]string{
		{"apple", "яблоко"}, {"river", "река"}, {"window", "окно"}, {"cloud", "облако"},
		{"bread", "хлеб"}, {"street", "улица"}, {"friend", "друг"}, {"summer", "лето"},
		{"table", "стол"}, {"mountain", "гора"}, {"letter", "письмо"}, {"garden", "сад"},
	}
	out := make([]Word, 0, n)
	for i := 0; i < n; i++ {
		p := pairs[i%len(pairs)]
		eng, rus := p[0], p[1]
		if i >= len(pairs) {
			eng += strconv.Itoa(i)
			rus += strconv.Itoa(i)
		}
		out = append(out, Word{ID: int64(i + 1), Eng: eng, Rus: rus, Transcript: "[" + eng + "]"})
	}
	return out
}
