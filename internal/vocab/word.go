package vocab

import (
	"context"
	"strings"
)

// Word is a single vocabulary entry. Words are treated as immutable once
// loaded from a Provider.
type Word struct {
	// Japanese is the written form, e.g. "犬" or "こんにちは".
	Japanese string `json:"japanese"`

	// Furigana is the kana reading of Japanese. Empty when Japanese is
	// already written in kana.
	Furigana string `json:"furigana,omitempty"`

	// Translation is the English meaning, e.g. "dog".
	Translation string `json:"translation"`

	// Sentence is an optional example sentence containing Japanese.
	Sentence string `json:"sentence,omitempty"`
}

// Key identifies a word for history tracking and de-duplication.
func (w Word) Key() string {
	return w.Japanese + "|" + w.Translation
}

// Reading returns the furigana when present, otherwise the Japanese text.
func (w Word) Reading() string {
	if strings.TrimSpace(w.Furigana) != "" {
		return w.Furigana
	}
	return w.Japanese
}

// Provider supplies vocabulary from an external content source.
type Provider interface {
	// Words returns every word in the bank. An empty slice is valid.
	Words(ctx context.Context) ([]Word, error)

	// WordsForDay returns the word list for study day n (1-based).
	WordsForDay(ctx context.Context, day int) ([]Word, error)
}

// Script identifies a kana syllabary.
type Script string

const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
)

// Kana is one entry of a kana table.
type Kana struct {
	Char   string `json:"char"`
	Romaji string `json:"romaji"`
	Type   Script `json:"type"`
	Group  string `json:"group"`
}

// Word maps the kana into the Word shape used by exercise generation.
func (k Kana) Word() Word {
	return Word{Japanese: k.Char, Translation: k.Romaji}
}

// KanaTable supplies the hiragana and katakana tables.
type KanaTable interface {
	Hiragana() []Kana
	Katakana() []Kana
}
