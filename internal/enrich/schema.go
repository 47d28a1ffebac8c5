package enrich

import "github.com/abhisek/kotoba/internal/llm"

// SentenceSchema is the response shape requested from the model.
var SentenceSchema = &llm.Schema{
	Name:        "example-sentence",
	Description: "One short Japanese example sentence using a vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"japanese": map[string]any{
				"type":        "string",
				"description": "The sentence in natural Japanese. It must contain the word exactly as written.",
			},
			"translation": map[string]any{
				"type":        "string",
				"description": "A natural English translation of the sentence",
			},
		},
		"required":             []any{"japanese", "translation"},
		"additionalProperties": false,
	},
}
