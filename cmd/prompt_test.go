package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/answer"
	"github.com/abhisek/kotoba/internal/exercise"
)

func TestPromptParse_Choice(t *testing.T) {
	p := newPrompt(&exercise.MultipleChoice{Options: []string{"dog", "cat", "car", "book"}})

	sub, err := p.parse(" 2 ")
	require.NoError(t, err)
	require.NotNil(t, sub.Index)
	assert.Equal(t, 1, *sub.Index)

	for _, in := range []string{"0", "5", "dog"} {
		_, err := p.parse(in)
		assert.Error(t, err, in)
	}
}

func TestPromptParse_Empty(t *testing.T) {
	p := newPrompt(&exercise.Translation{})
	_, err := p.parse("   ")
	assert.ErrorIs(t, err, errEmptyAnswer)
}

func TestPromptParse_Text(t *testing.T) {
	sub, err := newPrompt(&exercise.Write{}).parse("いぬ")
	require.NoError(t, err)
	assert.Equal(t, answer.Text("いぬ"), sub)

	listen := &exercise.Listen{Mode: exercise.ListenType}
	sub, err = newPrompt(listen).parse("ねこ")
	require.NoError(t, err)
	assert.Equal(t, "ねこ", sub.Text)

	listen.Mode = exercise.ListenSelect
	listen.Options = []string{"a", "b"}
	sub, err = newPrompt(listen).parse("2")
	require.NoError(t, err)
	assert.Equal(t, 1, *sub.Index)
}

func TestPromptParse_Blanks(t *testing.T) {
	single := &exercise.FillBlank{Blanks: []exercise.Blank{{Options: []string{"犬", "猫"}}}}
	sub, err := newPrompt(single).parse("2")
	require.NoError(t, err)
	assert.Equal(t, []string{"猫"}, sub.Blanks)

	sub, err = newPrompt(single).parse("いぬ")
	require.NoError(t, err)
	assert.Equal(t, []string{"いぬ"}, sub.Blanks)

	double := &exercise.FillBlank{Blanks: []exercise.Blank{{}, {}}}
	sub, err = newPrompt(double).parse("犬、 ねこ")
	require.NoError(t, err)
	assert.Equal(t, []string{"犬", "ねこ"}, sub.Blanks)

	_, err = newPrompt(double).parse("犬")
	assert.Error(t, err)
}

func TestPromptParse_Match(t *testing.T) {
	m := &exercise.Match{Pairs: []exercise.Pair{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
	}}
	p := newPrompt(m)
	p.english = []string{"cat", "dog"}

	sub, err := p.parse("1b, 2A")
	require.NoError(t, err)
	assert.Equal(t, []answer.MatchPair{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
	}, sub.Pairs)

	for _, in := range []string{"1", "3a", "1c", "a1"} {
		_, err := p.parse(in)
		assert.Error(t, err, in)
	}
}

func TestPromptParse_Order(t *testing.T) {
	p := newPrompt(&exercise.WordOrder{Words: []string{"は", "犬", "です"}})

	sub, err := p.parse("2 1 3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, sub.Order)

	_, err = p.parse("2 2 3")
	assert.ErrorContains(t, err, "twice")
	_, err = p.parse("1 4")
	assert.Error(t, err)
}

func TestPromptParse_Speak(t *testing.T) {
	sub, err := newPrompt(&exercise.Speak{}).parse("いぬ")
	require.NoError(t, err)
	require.NotNil(t, sub.Speech)
	assert.Equal(t, "いぬ", sub.Speech.Text)
}

func TestPromptRender(t *testing.T) {
	m := &exercise.Match{Pairs: []exercise.Pair{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
	}}
	p := newPrompt(m)
	assert.ElementsMatch(t, []string{"dog", "cat"}, p.english)

	out := p.render()
	assert.Contains(t, out, "犬")
	assert.Contains(t, out, "b)")

	assert.Equal(t, "ひん", newPrompt(&exercise.Speak{Reading: "ひん"}).hint())
	assert.Empty(t, newPrompt(&exercise.Match{}).hint())
}
