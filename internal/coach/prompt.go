package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/vocabdrill/internal/words"
)

const systemPrompt = `You are a friendly English tutor for Russian-speaking beginners. You explain single words with one simple example and one memorable hook.`

func userMessage(w words.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", w.English)
	fmt.Fprintf(&b, "Russian meaning: %s\n", w.Translation)
	if w.Transcript != "" {
		fmt.Fprintf(&b, "Transcription: %s\n", w.Transcript)
	}
	b.WriteString(`
Instructions:
1. Write one short example sentence that uses the word in its given meaning. Keep the vocabulary at A1-A2 level.
2. Translate the sentence into natural Russian.
3. Give a one-sentence mnemonic in Russian that helps remember the English word.
Plain text only, no markdown.`)
	return b.String()
}
