package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/kotoba/internal/answer"
	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

var errEmptyAnswer = errors.New("empty answer")

// prompt is one exercise as shown on the terminal. Match exercises show
// their translations in a shuffled order, so parsing needs the same view.
type prompt struct {
	ex      exercise.Exercise
	english []string
}

func newPrompt(ex exercise.Exercise) *prompt {
	p := &prompt{ex: ex}
	if m, ok := ex.(*exercise.Match); ok {
		p.english = lo.Shuffle(lo.Map(m.Pairs, func(pair exercise.Pair, _ int) string {
			return pair.Translation
		}))
	}
	return p
}

// render draws the question and whatever the learner picks from.
func (p *prompt) render() string {
	var b strings.Builder
	line := func(s string) { b.WriteString(s + "\n") }

	switch e := p.ex.(type) {
	case *exercise.MultipleChoice:
		line(question(e.Question, e.Direction))
		b.WriteString(components.Options(e.Options))
	case *exercise.Translation:
		line(question(e.Question, e.Direction))
	case *exercise.Write:
		line(question(e.Question, e.Direction))
	case *exercise.Listen:
		line(theme.Title.Render(e.Question))
		line(theme.Hint.Render("♪ " + e.AudioURL))
		if e.Mode == exercise.ListenSelect {
			b.WriteString(components.Options(e.Options))
		}
	case *exercise.FillBlank:
		line(theme.Title.Render("Fill in the blank"))
		line(theme.Japanese.Render(e.Sentence))
		line(theme.Subtitle.Render(e.Translation))
		if len(e.Blanks) == 1 && len(e.Blanks[0].Options) > 0 {
			b.WriteString(components.Options(e.Blanks[0].Options))
		}
	case *exercise.Match:
		line(theme.Title.Render("Match the pairs, e.g. 1a 2b"))
		for i, pair := range e.Pairs {
			line(fmt.Sprintf("  %d) %s\t%c) %s", i+1, theme.Japanese.Render(pair.Japanese),
				'a'+rune(i), theme.Body.Render(p.english[i])))
		}
	case *exercise.WordOrder:
		line(theme.Title.Render("Put the words in order"))
		line(theme.Subtitle.Render(e.Translation))
		b.WriteString(components.Options(e.Words))
	case *exercise.Speak:
		line(theme.Title.Render(e.Question))
		line(theme.Hint.Render("Type what you said."))
	}
	return b.String()
}

func question(q string, dir exercise.Direction) string {
	if dir == exercise.JapaneseToEnglish {
		return theme.Japanese.Render(q)
	}
	return theme.Title.Render(q)
}

// hint returns extra help shown on "?", or "" when the exercise has none.
func (p *prompt) hint() string {
	switch e := p.ex.(type) {
	case *exercise.Translation:
		return e.Hint
	case *exercise.Write:
		return e.Hint
	case *exercise.Listen:
		return e.AudioText
	case *exercise.Speak:
		return e.Reading
	}
	return ""
}

// parse turns a line of input into a submission. Choices and word
// positions are numbered from 1.
func (p *prompt) parse(input string) (answer.Submission, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return answer.Submission{}, errEmptyAnswer
	}

	switch e := p.ex.(type) {
	case *exercise.MultipleChoice:
		return parseChoice(input, len(e.Options))
	case *exercise.Listen:
		if e.Mode == exercise.ListenSelect {
			return parseChoice(input, len(e.Options))
		}
	case *exercise.FillBlank:
		return parseBlanks(input, e.Blanks)
	case *exercise.Match:
		return p.parseMatch(input, e)
	case *exercise.WordOrder:
		return parseOrder(input, len(e.Words))
	case *exercise.Speak:
		return answer.Speech(input, 0), nil
	}
	return answer.Text(input), nil
}

func parseChoice(input string, n int) (answer.Submission, error) {
	i, err := strconv.Atoi(input)
	if err != nil || i < 1 || i > n {
		return answer.Submission{}, fmt.Errorf("enter a number from 1 to %d", n)
	}
	return answer.Choice(i - 1), nil
}

// parseBlanks splits answers on commas. A number picks from the blank's
// options when it has any.
func parseBlanks(input string, blanks []exercise.Blank) (answer.Submission, error) {
	parts := []string{input}
	if len(blanks) > 1 {
		parts = strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == '、' })
	}
	if len(parts) != len(blanks) {
		return answer.Submission{}, fmt.Errorf("enter %d answers separated by commas", len(blanks))
	}

	answers := make([]string, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= len(blanks[i].Options) {
			part = blanks[i].Options[n-1]
		}
		answers[i] = part
	}
	return answer.Blanks(answers...), nil
}

func (p *prompt) parseMatch(input string, e *exercise.Match) (answer.Submission, error) {
	fields := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool { return r == ' ' || r == ',' })
	pairs := make([]answer.MatchPair, 0, len(fields))
	for _, f := range fields {
		letter := f[len(f)-1]
		n, err := strconv.Atoi(f[:len(f)-1])
		j := int(letter - 'a')
		if err != nil || n < 1 || n > len(e.Pairs) || j < 0 || j >= len(p.english) {
			return answer.Submission{}, fmt.Errorf("cannot read %q, pair a number with a letter like 1a", f)
		}
		pairs = append(pairs, answer.MatchPair{
			Japanese:    e.Pairs[n-1].Japanese,
			Translation: p.english[j],
		})
	}
	return answer.Pairs(pairs...), nil
}

func parseOrder(input string, n int) (answer.Submission, error) {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
	order := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > n {
			return answer.Submission{}, fmt.Errorf("enter word numbers from 1 to %d", n)
		}
		if slices.Contains(order, i-1) {
			return answer.Submission{}, fmt.Errorf("word %d is used twice", i)
		}
		order = append(order, i-1)
	}
	return answer.Order(order...), nil
}
