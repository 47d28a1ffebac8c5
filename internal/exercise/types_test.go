package exercise

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/vocab"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"multiple_choice", TypeMultipleChoice, false},
		{"mc", TypeMultipleChoice, false},
		{"translation", TypeTranslation, false},
		{"translate", TypeTranslation, false},
		{" Listen ", TypeListen, false},
		{"fill_blank", TypeFillBlank, false},
		{"match", TypeMatch, false},
		{"word_order", TypeWordOrder, false},
		{"write", TypeWrite, false},
		{"speak", TypeSpeak, false},
		{"essay", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPoints(t *testing.T) {
	want := []int{10, 15, 15, 15, 20, 20, 25}
	for i, typ := range AllTypes {
		assert.Equal(t, want[i], Points(typ), typ)
	}
	assert.Equal(t, 15, Points(TypeSpeak))
	assert.Zero(t, Points("bogus"))
}

func TestTrackedShuffle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	items := []string{"dog", "cat", "dog", "bird"}

	for tracked := range items {
		out, pos := TrackedShuffle(rng, items, tracked)
		assert.ElementsMatch(t, items, out)
		require.GreaterOrEqual(t, pos, 0)
		assert.Equal(t, items[tracked], out[pos])
	}
	assert.Equal(t, []string{"dog", "cat", "dog", "bird"}, items, "input must not be modified")

	_, pos := TrackedShuffle(rng, items, 7)
	assert.Equal(t, -1, pos)

	out, pos := TrackedShuffle(rng, []int{}, 0)
	assert.Empty(t, out)
	assert.Equal(t, -1, pos)
}

func TestTrackedShuffle_Uniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	counts := make([]int, 4)
	const trials = 8000
	for range trials {
		_, pos := TrackedShuffle(rng, []int{10, 20, 30, 40}, 0)
		counts[pos]++
	}
	for i, c := range counts {
		assert.InDelta(t, trials/4, c, 300, "position %d", i)
	}
}

func TestAcceptableVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello", []string{"hi", "hey"}},
		{"Thank you!", []string{"thanks", "thank you very much", "thanks a lot"}},
		{"to eat", []string{"eat"}},
		{"dog / hound", []string{"dog", "hound"}},
		{"good morning, hello", []string{"good morning", "morning", "hello", "hi", "hey"}},
		{"to run; to operate", []string{"to run", "run", "to operate", "operate"}},
		{"water", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, AcceptableVariants(tt.in))
		})
	}
}

func TestCorrectAnswer(t *testing.T) {
	assert.Equal(t, "dog", CorrectAnswer(&MultipleChoice{CorrectAnswer: "dog"}))
	assert.Equal(t, "犬, 猫", CorrectAnswer(&FillBlank{Blanks: []Blank{{CorrectAnswer: "犬"}, {CorrectAnswer: "猫"}}}))
	assert.Equal(t, "犬 = dog; 猫 = cat", CorrectAnswer(&Match{Pairs: []Pair{
		{Japanese: "犬", Translation: "dog"},
		{Japanese: "猫", Translation: "cat"},
	}}))
	assert.Equal(t, "私は毎日犬を勉強します", CorrectAnswer(&WordOrder{Sentence: "私は毎日犬を勉強します"}))
	assert.Empty(t, CorrectAnswer(nil))
}

func TestListJSON(t *testing.T) {
	f := newFixture(t, sampleProvider(), 21)
	set := List(f.gen.GenerateSet(context.Background(), "all", 14, 5))
	set = append(set, f.gen.Speak(vocab.Word{Japanese: "犬", Furigana: "いぬ", Translation: "dog"}, 2))

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, len(set))
	for i, m := range raw {
		assert.Equal(t, string(set[i].Kind()), m["type"])
		assert.Contains(t, m, "id")
		assert.Contains(t, m, "word")
	}

	var decoded List
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, set, decoded)
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"essay"}`))
	assert.ErrorContains(t, err, "unknown exercise type")

	var l List
	err = json.Unmarshal([]byte(`[{"type":"match","pairs":[]},{"type":"nope"}]`), &l)
	assert.ErrorContains(t, err, "exercise 1")
}
