// Package answer scores learner submissions against exercises.
package answer

import (
	"fmt"
	"strings"
)

// Submission is a learner's answer. Exactly one field is expected to be
// set, matching the exercise type: Index for multiple choice and listen
// select, Text for free-text answers, Pairs for match, Blanks for fill
// blank, Order for word order and Speech for speak.
type Submission struct {
	Index  *int         `json:"index,omitempty"`
	Text   string       `json:"text,omitempty"`
	Pairs  []MatchPair  `json:"pairs,omitempty"`
	Blanks []string     `json:"blanks,omitempty"`
	Order  []int        `json:"order,omitempty"`
	Speech *Recognition `json:"speech,omitempty"`
}

// MatchPair is one pairing the learner claims belongs together.
type MatchPair struct {
	Japanese    string `json:"japanese"`
	Translation string `json:"translation"`
}

// Recognition is the output of a speech recognizer.
type Recognition struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func Choice(index int) Submission { return Submission{Index: &index} }

func Text(s string) Submission { return Submission{Text: s} }

func Pairs(pairs ...MatchPair) Submission { return Submission{Pairs: pairs} }

func Blanks(answers ...string) Submission { return Submission{Blanks: answers} }

func Order(indices ...int) Submission { return Submission{Order: indices} }

func Speech(text string, confidence float64) Submission {
	return Submission{Speech: &Recognition{Text: text, Confidence: confidence}}
}

// String renders the submission for logs and answer history.
func (s Submission) String() string {
	switch {
	case s.Index != nil:
		return fmt.Sprintf("#%d", *s.Index)
	case s.Speech != nil:
		return s.Speech.Text
	case len(s.Pairs) > 0:
		parts := make([]string, len(s.Pairs))
		for i, p := range s.Pairs {
			parts[i] = p.Japanese + " = " + p.Translation
		}
		return strings.Join(parts, "; ")
	case len(s.Blanks) > 0:
		return strings.Join(s.Blanks, ", ")
	case len(s.Order) > 0:
		return strings.Trim(fmt.Sprint(s.Order), "[]")
	}
	return s.Text
}
