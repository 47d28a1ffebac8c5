// Package fuzzy scores free-text answers against expected answers using
// edit-distance similarity, tolerating small typos.
package fuzzy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/width"
)

// DefaultThreshold is the minimum similarity for a fuzzy match on Latin text.
const DefaultThreshold = 0.8

// JapaneseThreshold is stricter because a one-character slip in Japanese
// usually changes the word.
const JapaneseThreshold = 0.85

// AcceptableScore is awarded when the answer equals an alternate answer.
const AcceptableScore = 0.9

// MatchType classifies how an answer matched.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchAcceptable MatchType = "acceptable"
	MatchFuzzy      MatchType = "fuzzy"
	MatchNone       MatchType = "none"
)

// Match is the outcome of comparing a learner's answer.
type Match struct {
	Matched bool      `json:"match"`
	Type    MatchType `json:"type"`
	Score   float64   `json:"score"`
}

var noMatch = Match{Type: MatchNone}

// Similarity returns 1 - distance/maxLen over runes. Two empty strings are
// identical; an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 1.0
	}
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein.Distance(a, b, nil)
	return float64(maxLen-d) / float64(maxLen)
}

// MatchAnswer compares a Latin-script answer: exact match, then the
// acceptable alternates, then similarity against threshold.
func MatchAnswer(user, correct string, acceptable []string, threshold float64) Match {
	u := Normalize(user)
	c := Normalize(correct)

	if u == c {
		return Match{Matched: true, Type: MatchExact, Score: 1.0}
	}

	for _, alt := range acceptable {
		if u == Normalize(alt) {
			return Match{Matched: true, Type: MatchAcceptable, Score: AcceptableScore}
		}
	}

	if sim := Similarity(u, c); sim >= threshold {
		return Match{Matched: true, Type: MatchFuzzy, Score: sim}
	}
	return noMatch
}

// MatchJapanese compares Japanese text. There is no acceptable tier and the
// fuzzy threshold is fixed at JapaneseThreshold.
func MatchJapanese(user, correct string) Match {
	u := NormalizeJapanese(user)
	c := NormalizeJapanese(correct)

	if u == c {
		return Match{Matched: true, Type: MatchExact, Score: 1.0}
	}
	if sim := Similarity(u, c); sim >= JapaneseThreshold {
		return Match{Matched: true, Type: MatchFuzzy, Score: sim}
	}
	return noMatch
}

const terminalPunct = `.,!?;:"'`

// Normalize lowercases, trims, strips terminal punctuation and collapses
// internal whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, terminalPunct)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeJapanese folds full/half-width forms, drops all whitespace and
// the ideographic full stop and comma. Case is left alone.
func NormalizeJapanese(s string) string {
	s = width.Fold.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '。' || r == '、' {
			return -1
		}
		return r
	}, s)
}

// ContainsJapanese reports whether s has any hiragana, katakana or kanji.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
