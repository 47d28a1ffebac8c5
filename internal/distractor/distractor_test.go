package distractor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/vocab"
)

type fakeSource struct {
	words []vocab.Word
	err   error
}

func (f fakeSource) Words(context.Context) ([]vocab.Word, error) {
	return f.words, f.err
}

func sampleBank() []vocab.Word {
	return []vocab.Word{
		{Japanese: "犬", Furigana: "いぬ", Translation: "dog"},
		{Japanese: "猫", Furigana: "ねこ", Translation: "cat"},
		{Japanese: "鳥", Furigana: "とり", Translation: "bird"},
		{Japanese: "魚", Furigana: "さかな", Translation: "fish"},
		{Japanese: "馬", Furigana: "うま", Translation: "horse"},
		{Japanese: "牛", Furigana: "うし", Translation: "cow"},
		{Japanese: "水", Furigana: "みず", Translation: "water"},
		{Japanese: "本", Furigana: "ほん", Translation: "book"},
		{Japanese: "机", Furigana: "つくえ", Translation: "desk"},
		{Japanese: "ドア", Translation: "door"},
	}
}

func newGen(t *testing.T, src WordSource, seed uint64) *Generator {
	t.Helper()
	log, _ := test.NewNullLogger()
	cfg := DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(seed, seed+1))
	return New(src, cfg, log)
}

func assertValid(t *testing.T, set Set, count int, correct string) {
	t.Helper()
	require.Len(t, set.Values, count)
	assert.Len(t, lo.Uniq(lo.Map(set.Values, func(v string, _ int) string { return strings.ToLower(v) })), count, "duplicates in %v", set.Values)
	for _, v := range set.Values {
		assert.NotEqual(t, strings.ToLower(correct), strings.ToLower(v))
		assert.NotEmpty(t, strings.TrimSpace(v))
	}
}

func TestGenerate_FromBank(t *testing.T) {
	bank := sampleBank()
	for seed := uint64(0); seed < 50; seed++ {
		g := newGen(t, fakeSource{words: bank}, seed)
		set, err := g.Generate(context.Background(), bank[0], 3, FieldTranslation)
		require.NoError(t, err)
		assertValid(t, set, 3, "dog")
		assert.False(t, set.Degraded)

		for _, v := range set.Values {
			assert.True(t, lo.ContainsBy(bank, func(w vocab.Word) bool { return w.Translation == v }), "%q not from bank", v)
		}
	}
}

func TestGenerate_JapaneseField(t *testing.T) {
	bank := sampleBank()
	g := newGen(t, fakeSource{words: bank}, 7)
	set, err := g.Generate(context.Background(), bank[1], 3, FieldJapanese)
	require.NoError(t, err)
	assertValid(t, set, 3, "猫")
	for _, v := range set.Values {
		assert.True(t, lo.ContainsBy(bank, func(w vocab.Word) bool { return w.Japanese == v }))
	}
}

func TestGenerate_EmptyBankFallsBack(t *testing.T) {
	g := newGen(t, fakeSource{}, 1)
	set, err := g.Generate(context.Background(), vocab.Word{Japanese: "犬", Translation: "dog"}, 3, FieldTranslation)
	require.NoError(t, err)
	assertValid(t, set, 3, "dog")
	assert.True(t, set.Degraded)
	assert.Contains(t, set.Values, "dogs")
	assert.Contains(t, set.Values, "not dog")
}

func TestGenerate_LoadErrorFallsBack(t *testing.T) {
	log, hook := test.NewNullLogger()
	g := New(fakeSource{err: errors.New("boom")}, DefaultConfig(), log)
	set, err := g.Generate(context.Background(), vocab.Word{Japanese: "こんにちは", Translation: "hello"}, 3, FieldTranslation)
	require.NoError(t, err)
	assertValid(t, set, 3, "hello")
	assert.True(t, set.Degraded)
	assert.NotEmpty(t, hook.Entries)
}

func TestGenerate_TinyBankTopsUpThenFallsBack(t *testing.T) {
	bank := []vocab.Word{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
	}
	g := newGen(t, fakeSource{words: bank}, 3)
	set, err := g.Generate(context.Background(), bank[0], 3, FieldTranslation)
	require.NoError(t, err)
	assertValid(t, set, 3, "dog")
	assert.Contains(t, set.Values, "cat")
	assert.True(t, set.Degraded)
}

func TestGenerate_DuplicateTranslationsInBank(t *testing.T) {
	bank := []vocab.Word{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "いぬ", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
		{Japanese: "ねこ", Translation: "Cat"},
	}
	g := newGen(t, fakeSource{words: bank}, 9)
	set, err := g.Generate(context.Background(), bank[0], 3, FieldTranslation)
	require.NoError(t, err)
	assertValid(t, set, 3, "dog")
}

func TestGenerate_ManyCounts(t *testing.T) {
	bank := sampleBank()
	for _, count := range []int{0, 1, 5, 9, 12} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			g := newGen(t, fakeSource{words: bank}, uint64(count))
			set, err := g.Generate(context.Background(), bank[2], count, FieldTranslation)
			require.NoError(t, err)
			assertValid(t, set, count, "bird")
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	g := newGen(t, fakeSource{words: sampleBank()}, 1)

	_, err := g.Generate(context.Background(), sampleBank()[0], -1, FieldTranslation)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, sampleBank()[0], 3, FieldTranslation)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransforms(t *testing.T) {
	assert.Equal(t, []string{"morning good", "good mornings", "not good morning", "good m"}, transforms("good morning"))
	assert.Equal(t, []string{"boxes", "not box", "bo"}, transforms("box"))
	assert.Nil(t, transforms("  "))
}
