package answer

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/fuzzy"
)

// Result is the outcome of validating a submission. Correct, Score and
// Feedback are always set; the remaining fields depend on the exercise type.
type Result struct {
	Correct          bool            `json:"correct"`
	Score            float64         `json:"score"`
	Feedback         string          `json:"feedback"`
	CorrectAnswer    string          `json:"correctAnswer,omitempty"`
	MatchType        fuzzy.MatchType `json:"matchType,omitempty"`
	CorrectPairs     int             `json:"correctPairs,omitempty"`
	TotalPairs       int             `json:"totalPairs,omitempty"`
	Results          []BlankResult   `json:"results,omitempty"`
	CorrectPositions int             `json:"correctPositions,omitempty"`
	TotalPositions   int             `json:"totalPositions,omitempty"`
	Confidence       float64         `json:"confidence,omitempty"`
}

// BlankResult scores a single fill-blank slot.
type BlankResult struct {
	Index         int             `json:"index"`
	Answer        string          `json:"answer"`
	Correct       bool            `json:"correct"`
	Score         float64         `json:"score"`
	MatchType     fuzzy.MatchType `json:"matchType"`
	CorrectAnswer string          `json:"correctAnswer"`
}

const (
	feedbackEmpty       = "Please enter an answer."
	feedbackBlanks      = "Please fill in all blanks."
	feedbackNoSpeech    = "Could not recognize speech. Please try again."
	feedbackUnknownType = "unknown exercise type"
)

// Validate scores sub against ex. Malformed or missing answers produce an
// incorrect result with explanatory feedback rather than an error. A nil
// exercise is reported as an unknown type.
func Validate(ex exercise.Exercise, sub Submission) Result {
	switch e := ex.(type) {
	case *exercise.MultipleChoice:
		return choice(e.Options, e.CorrectIndex, e.CorrectAnswer, sub)
	case *exercise.Translation:
		return freeText(e.Direction, e.CorrectAnswer, e.AcceptableAnswers, sub.Text)
	case *exercise.Write:
		return freeText(e.Direction, e.CorrectAnswer, e.AcceptableAnswers, sub.Text)
	case *exercise.Listen:
		if e.Mode == exercise.ListenSelect {
			return choice(e.Options, e.CorrectIndex, e.CorrectAnswer, sub)
		}
		return freeText(exercise.EnglishToJapanese, e.CorrectAnswer, nil, sub.Text)
	case *exercise.Match:
		return match(e, sub.Pairs)
	case *exercise.FillBlank:
		return fillBlank(e, sub.Blanks)
	case *exercise.WordOrder:
		return wordOrder(e, sub.Order)
	case *exercise.Speak:
		return speak(e, sub.Speech)
	}

	feedback := feedbackUnknownType
	if ex != nil {
		feedback = fmt.Sprintf("%s %q", feedbackUnknownType, ex.Kind())
	}
	return Result{Feedback: feedback}
}

// choice compares a selected index. Selections are never compared by text.
func choice(options []string, correctIndex int, correct string, sub Submission) Result {
	if sub.Index == nil {
		return Result{Feedback: "Please select an option.", CorrectAnswer: correct}
	}
	if *sub.Index == correctIndex {
		return Result{Correct: true, Score: 1, Feedback: "Correct!", CorrectAnswer: correct}
	}
	if correctIndex >= 0 && correctIndex < len(options) {
		correct = options[correctIndex]
	}
	return Result{
		Feedback:      fmt.Sprintf("Incorrect. The correct answer is %s.", correct),
		CorrectAnswer: correct,
	}
}

// freeText matches typed answers. Answers in Japanese are matched without
// an acceptable-answers tier.
func freeText(dir exercise.Direction, correct string, acceptable []string, user string) Result {
	if strings.TrimSpace(user) == "" {
		return Result{Feedback: feedbackEmpty, CorrectAnswer: correct}
	}

	var m fuzzy.Match
	if dir == exercise.EnglishToJapanese {
		m = fuzzy.MatchJapanese(user, correct)
	} else {
		m = fuzzy.MatchAnswer(user, correct, acceptable, fuzzy.DefaultThreshold)
	}

	return Result{
		Correct:       m.Matched,
		Score:         m.Score,
		Feedback:      feedbackFor(m, correct),
		CorrectAnswer: correct,
		MatchType:     m.Type,
	}
}

func feedbackFor(m fuzzy.Match, correct string) string {
	switch {
	case m.Type == fuzzy.MatchExact:
		return "Perfect!"
	case m.Type == fuzzy.MatchAcceptable:
		return fmt.Sprintf("Correct! Another way to say it: %s.", correct)
	case m.Type == fuzzy.MatchFuzzy && m.Score >= 0.9:
		return fmt.Sprintf("Almost perfect! Watch the spelling: %s.", correct)
	case m.Type == fuzzy.MatchFuzzy && m.Score >= fuzzy.DefaultThreshold:
		return fmt.Sprintf("Close enough! The correct answer is %s.", correct)
	case m.Type == fuzzy.MatchFuzzy:
		return fmt.Sprintf("Accepted, but check your spelling: %s.", correct)
	}
	return fmt.Sprintf("Not quite. The correct answer is %s.", correct)
}

// match counts submitted pairs found among the true pairs, ignoring order.
// Each true pair can be claimed once.
func match(e *exercise.Match, pairs []MatchPair) Result {
	total := len(e.Pairs)
	used := make([]bool, total)
	matched := 0
	for _, p := range pairs {
		for i, truth := range e.Pairs {
			if !used[i] && truth.Japanese == p.Japanese && truth.Translation == p.Translation {
				used[i] = true
				matched++
				break
			}
		}
	}

	res := Result{
		Correct:       total > 0 && matched == len(pairs) && matched == total,
		CorrectPairs:  matched,
		TotalPairs:    total,
		CorrectAnswer: exercise.CorrectAnswer(e),
	}
	if total > 0 {
		res.Score = float64(matched) / float64(total)
	}
	if res.Correct {
		res.Feedback = "All pairs matched!"
	} else {
		res.Feedback = fmt.Sprintf("%d of %d pairs matched.", matched, total)
	}
	return res
}

func fillBlank(e *exercise.FillBlank, answers []string) Result {
	correct := exercise.CorrectAnswer(e)
	if len(answers) != len(e.Blanks) || len(e.Blanks) == 0 {
		return Result{Feedback: feedbackBlanks, CorrectAnswer: correct}
	}

	results := make([]BlankResult, len(e.Blanks))
	right := 0
	for i, b := range e.Blanks {
		m := matchBlank(answers[i], b)
		results[i] = BlankResult{
			Index:         b.Index,
			Answer:        answers[i],
			Correct:       m.Matched,
			Score:         m.Score,
			MatchType:     m.Type,
			CorrectAnswer: b.CorrectAnswer,
		}
		if m.Matched {
			right++
		}
	}

	res := Result{
		Correct:       right == len(e.Blanks),
		Score:         float64(right) / float64(len(e.Blanks)),
		CorrectAnswer: correct,
		Results:       results,
	}
	if res.Correct {
		res.Feedback = "All blanks correct!"
	} else {
		res.Feedback = fmt.Sprintf("%d of %d blanks correct. The answer is %s.", right, len(e.Blanks), correct)
	}
	return res
}

// matchBlank uses Japanese matching when the expected answer is Japanese.
// Acceptable answers such as the furigana reading count as acceptable.
func matchBlank(user string, b exercise.Blank) fuzzy.Match {
	if !fuzzy.ContainsJapanese(b.CorrectAnswer) {
		return fuzzy.MatchAnswer(user, b.CorrectAnswer, b.AcceptableAnswers, fuzzy.DefaultThreshold)
	}

	m := fuzzy.MatchJapanese(user, b.CorrectAnswer)
	if m.Type == fuzzy.MatchExact {
		return m
	}
	for _, alt := range b.AcceptableAnswers {
		if fuzzy.MatchJapanese(user, alt).Type == fuzzy.MatchExact {
			return fuzzy.Match{Matched: true, Type: fuzzy.MatchAcceptable, Score: fuzzy.AcceptableScore}
		}
	}
	return m
}

// wordOrder awards credit per position, so a single misplaced token can
// cost more than one position. Positions compare token text, which makes
// repeated tokens interchangeable.
func wordOrder(e *exercise.WordOrder, order []int) Result {
	total := len(e.CorrectOrder)
	right := 0
	used := make(map[int]bool, len(order))
	for i, idx := range order {
		used[idx] = true
		if i >= total {
			continue
		}
		if tok := tokenAt(e.Words, idx); tok != "" && tok == tokenAt(e.Words, e.CorrectOrder[i]) {
			right++
		}
	}

	res := Result{
		Correct:          total > 0 && len(order) == total && len(used) == total && right == total,
		CorrectAnswer:    e.Sentence,
		CorrectPositions: right,
		TotalPositions:   total,
	}
	if total > 0 {
		res.Score = float64(right) / float64(total)
	}
	if res.Correct {
		res.Feedback = "Perfect order!"
	} else {
		res.Feedback = fmt.Sprintf("%d of %d words in the right place. The sentence is %s.", right, total, e.Sentence)
	}
	return res
}

func tokenAt(words []string, i int) string {
	if i < 0 || i >= len(words) {
		return ""
	}
	return words[i]
}

// speak matches recognized text against the word and its reading. When
// the recognizer reports a confidence it is used as the score.
func speak(e *exercise.Speak, rec *Recognition) Result {
	if rec == nil || strings.TrimSpace(rec.Text) == "" {
		return Result{Feedback: feedbackNoSpeech, CorrectAnswer: e.CorrectAnswer}
	}

	m := fuzzy.MatchJapanese(rec.Text, e.CorrectAnswer)
	if e.Reading != "" && e.Reading != e.CorrectAnswer {
		if alt := fuzzy.MatchJapanese(rec.Text, e.Reading); alt.Score > m.Score {
			m = alt
		}
	}

	res := Result{
		Correct:       m.Matched,
		CorrectAnswer: e.CorrectAnswer,
		MatchType:     m.Type,
		Confidence:    rec.Confidence,
	}
	if !m.Matched {
		res.Feedback = fmt.Sprintf("Not quite. Try saying %s (%s).", e.CorrectAnswer, e.Reading)
		return res
	}

	res.Score = m.Score
	if rec.Confidence > 0 {
		res.Score = min(rec.Confidence, 1)
	}
	res.Feedback = "Great pronunciation!"
	return res
}
