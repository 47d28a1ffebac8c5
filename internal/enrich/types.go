// Package enrich asks an LLM for example sentences for words that have
// none, so fill-in-the-blank exercises can use natural sentences instead
// of templates.
package enrich

import (
	"context"

	"github.com/abhisek/kotoba/internal/store"
)

// Sentence is one generated example.
type Sentence struct {
	Japanese    string `json:"japanese"`
	Translation string `json:"translation"`
}

// Store is the part of the word repository enrichment needs.
type Store interface {
	WordsMissingSentence(ctx context.Context, limit int) ([]store.StoredWord, error)
	SetSentence(ctx context.Context, id int64, sentence string) error
}

// Report summarizes an EnrichMissing run.
type Report struct {
	Candidates int
	Enriched   int
	Failed     int
}
