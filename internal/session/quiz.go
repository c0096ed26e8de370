package session

import (
	"slices"
	"strings"

	"github.com/abhisek/vocabdrill/internal/words"
)

// OptionCount is the number of choices in a quiz.
const OptionCount = 4

// Builtin decoys used when a batch is too small to supply three.
var (
	fallbackEnglish = []string{"cat", "dog", "house", "car", "book", "water", "sun", "tree"}
	fallbackRussian = []string{"кот", "собака", "дом", "машина", "книга", "вода", "солнце", "дерево"}
)

// Quiz is one multiple-choice question.
type Quiz struct {
	WordID  int64
	From    words.Lang
	To      words.Lang
	Prompt  string
	Options []string
	Answer  int // index of the correct option
}

// IsCorrect reports whether option i is the answer.
func (q Quiz) IsCorrect(i int) bool {
	return i == q.Answer
}

// Quiz builds a question for the current word. It is only available in the
// quiz phases; each call reshuffles.
func (s *Session) Quiz() (Quiz, bool) {
	w, ok := s.Current()
	if !ok || !s.phase.IsQuiz() {
		return Quiz{}, false
	}

	from, to := words.Russian, words.English
	if s.phase == PhaseQuizForeignToNative {
		from, to = words.English, words.Russian
	}

	answer := w.Term(to)
	options := append([]string{answer}, s.decoys(w, to, OptionCount-1)...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Quiz{
		WordID:  w.ID,
		From:    from,
		To:      to,
		Prompt:  w.Term(from),
		Options: options,
		Answer:  slices.Index(options, answer),
	}, true
}

// decoys picks n distinct wrong answers for w in lang. Other words of the
// batch are preferred; when they cannot supply n, they are pooled with the
// builtin vocabulary and n are drawn from the pool.
func (s *Session) decoys(w words.Word, lang words.Lang, n int) []string {
	answer := w.Term(lang)
	seen := map[string]bool{normalize(answer): true}

	var pool []string
	add := func(v string) {
		key := normalize(v)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		pool = append(pool, v)
	}

	for _, other := range s.batch {
		if other.ID != w.ID {
			add(other.Term(lang))
		}
	}
	if len(pool) < n {
		fallback := fallbackEnglish
		if lang == words.Russian {
			fallback = fallbackRussian
		}
		for _, v := range fallback {
			add(v)
		}
	}

	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:min(n, len(pool))]
}

// Choose scores option i of q for the current word. A wrong choice records
// a mistake; the phase never advances here.
func (s *Session) Choose(q Quiz, i int) bool {
	if w, ok := s.Current(); !ok || w.ID != q.WordID {
		return false
	}
	correct := q.IsCorrect(i)
	s.score(correct)
	return correct
}

// TextPrompt asks for a typed translation.
type TextPrompt struct {
	WordID   int64
	From     words.Lang
	To       words.Lang
	Prompt   string
	Expected string
}

// Check compares input with the expected answer, ignoring case and
// surrounding whitespace.
func (p TextPrompt) Check(input string) bool {
	return normalize(input) == normalize(p.Expected)
}

// TextPrompt builds the free-text question for the current word with a
// random direction. The caller keeps it until the word is answered.
func (s *Session) TextPrompt() (TextPrompt, bool) {
	w, ok := s.Current()
	if !ok || s.phase != PhaseTextInput {
		return TextPrompt{}, false
	}
	from, to := words.Russian, words.English
	if s.rng.IntN(2) == 0 {
		from, to = words.English, words.Russian
	}
	return TextPrompt{
		WordID:   w.ID,
		From:     from,
		To:       to,
		Prompt:   w.Term(from),
		Expected: w.Term(to),
	}, true
}

// SubmitText scores input against p for the current word. A wrong answer
// records a mistake and leaves the word in place for another attempt.
func (s *Session) SubmitText(p TextPrompt, input string) bool {
	if w, ok := s.Current(); !ok || w.ID != p.WordID {
		return false
	}
	correct := p.Check(input)
	s.score(correct)
	return correct
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
