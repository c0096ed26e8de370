package coach

import "github.com/abhisek/vocabdrill/internal/llm"

// TipSchema constrains the model to one example, its translation and a
// memory hook.
var TipSchema = &llm.Schema{
	Name:        "word-tip",
	Description: "An example sentence, its Russian translation and a mnemonic for one English word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"example": map[string]any{
				"type":        "string",
				"description": "A short everyday English sentence using the word (6-12 words)",
				"minLength":   1,
			},
			"translation": map[string]any{
				"type":        "string",
				"description": "The Russian translation of the example sentence",
				"minLength":   1,
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "One sentence linking the English word to its Russian meaning by sound or image",
			},
		},
		"required":             []any{"example", "translation", "mnemonic"},
		"additionalProperties": false,
	},
}
