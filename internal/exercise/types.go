// Package exercise defines the exercise variants and builds varied exercise
// sets from a word pool.
package exercise

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/vocab"
)

// Type discriminates the exercise variants.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeTranslation    Type = "translation"
	TypeListen         Type = "listen"
	TypeFillBlank      Type = "fill_blank"
	TypeMatch          Type = "match"
	TypeWordOrder      Type = "word_order"
	TypeWrite          Type = "write"
	TypeSpeak          Type = "speak"
)

// AllTypes lists the generated types in their canonical order.
var AllTypes = []Type{
	TypeMultipleChoice,
	TypeTranslation,
	TypeListen,
	TypeFillBlank,
	TypeMatch,
	TypeWordOrder,
	TypeWrite,
}

// ParseType resolves a type name. "translate" is accepted as an alias of
// "translation", and "mc" of "multiple_choice".
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "translate":
		return TypeTranslation, nil
	case "mc":
		return TypeMultipleChoice, nil
	case TypeMultipleChoice, TypeTranslation, TypeListen, TypeFillBlank,
		TypeMatch, TypeWordOrder, TypeWrite, TypeSpeak:
		return t, nil
	}
	return "", fmt.Errorf("unknown exercise type %q", s)
}

// Points returns the fixed score weight of a type.
func Points(t Type) int {
	switch t {
	case TypeMultipleChoice:
		return 10
	case TypeTranslation, TypeListen, TypeFillBlank, TypeSpeak:
		return 15
	case TypeMatch, TypeWordOrder:
		return 20
	case TypeWrite:
		return 25
	}
	return 0
}

// Direction is the translation direction of a prompt.
type Direction string

const (
	JapaneseToEnglish Direction = "jp_to_en"
	EnglishToJapanese Direction = "en_to_jp"
)

// ListenMode selects how a listen exercise is answered.
type ListenMode string

const (
	ListenSelect ListenMode = "listen_select"
	ListenType   ListenMode = "listen_type"
)

// BlankMarker replaces the hidden word in fill-blank sentences.
const BlankMarker = "＿＿＿"

// Exercise is implemented by every variant. Validators and renderers
// type-switch on the concrete pointer type.
type Exercise interface {
	Base() *Common
	Kind() Type
}

// Common holds the fields shared by all variants.
type Common struct {
	ID          string     `json:"id"`
	Type        Type       `json:"type"`
	Difficulty  int        `json:"difficulty"`
	Points      int        `json:"points"`
	Word        vocab.Word `json:"word"`
	Explanation string     `json:"explanation"`
}

func (c *Common) Base() *Common { return c }
func (c *Common) Kind() Type    { return c.Type }

type MultipleChoice struct {
	Common
	Direction     Direction `json:"direction"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correctAnswer"`
	Options       []string  `json:"options"`
	CorrectIndex  int       `json:"correctIndex"`
}

type Translation struct {
	Common
	Direction         Direction `json:"direction"`
	Question          string    `json:"question"`
	CorrectAnswer     string    `json:"correctAnswer"`
	AcceptableAnswers []string  `json:"acceptableAnswers"`
	Hint              string    `json:"hint"`
}

type Listen struct {
	Common
	Mode            ListenMode `json:"exerciseType"`
	Question        string     `json:"question"`
	AudioText       string     `json:"questionAudio"`
	AudioURL        string     `json:"audioUrl"`
	CorrectAnswer   string     `json:"correctAnswer"`
	CorrectAnswerEn string     `json:"correctAnswerEn"`
	Options         []string   `json:"options,omitempty"`
	CorrectIndex    int        `json:"correctIndex"`
}

// Blank is one hidden slot of a fill-blank sentence.
type Blank struct {
	Index             int      `json:"index"`
	CorrectAnswer     string   `json:"correctAnswer"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
	Options           []string `json:"options,omitempty"`
}

type FillBlank struct {
	Common
	Sentence    string  `json:"sentence"`
	Translation string  `json:"translation"`
	Blanks      []Blank `json:"blanks"`
}

// Pair is one Japanese/English pairing of a match exercise.
type Pair struct {
	ID          string `json:"id"`
	Japanese    string `json:"japanese"`
	Translation string `json:"translation"`
}

type Match struct {
	Common
	Pairs []Pair `json:"pairs"`
}

type WordOrder struct {
	Common
	Sentence     string   `json:"sentence"`
	Translation  string   `json:"translation"`
	Words        []string `json:"words"`
	CorrectOrder []int    `json:"correctOrder"`
}

type Write struct {
	Common
	Direction         Direction `json:"direction"`
	Question          string    `json:"question"`
	CorrectAnswer     string    `json:"correctAnswer"`
	AcceptableAnswers []string  `json:"acceptableAnswers"`
	Hint              string    `json:"hint"`
}

// Speak asks the learner to say a word aloud. Recognition happens outside
// this package; the validator receives the recognizer's result.
type Speak struct {
	Common
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	Reading       string `json:"reading"`
}

// CorrectAnswer returns a display form of the expected answer.
func CorrectAnswer(ex Exercise) string {
	switch e := ex.(type) {
	case *MultipleChoice:
		return e.CorrectAnswer
	case *Translation:
		return e.CorrectAnswer
	case *Listen:
		return e.CorrectAnswer
	case *FillBlank:
		answers := make([]string, len(e.Blanks))
		for i, b := range e.Blanks {
			answers[i] = b.CorrectAnswer
		}
		return strings.Join(answers, ", ")
	case *Match:
		parts := make([]string, len(e.Pairs))
		for i, p := range e.Pairs {
			parts[i] = p.Japanese + " = " + p.Translation
		}
		return strings.Join(parts, "; ")
	case *WordOrder:
		return e.Sentence
	case *Write:
		return e.CorrectAnswer
	case *Speak:
		return e.CorrectAnswer
	}
	return ""
}
