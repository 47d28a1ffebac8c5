package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "こんにちは", "good morning"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"hello", "helo"},
		{"dog", "cat"},
		{"", "abc"},
		{"いぬ", "いね"},
		{"kitten", "sitting"},
	}
	for _, p := range pairs {
		ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q,%q)=%v but reverse=%v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Values(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"", "x", 0},
		{"abc", "", 0},
		{"hello", "helo", 0.8},
		{"abcd", "wxyz", 0},
		{"犬", "猫", 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, Similarity(tc.a, tc.b), 1e-9, "Similarity(%q, %q)", tc.a, tc.b)
	}
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		name       string
		user       string
		correct    string
		acceptable []string
		wantMatch  bool
		wantType   MatchType
		wantScore  float64
	}{
		{"punctuation and case", "Hello!", "hello", nil, true, MatchExact, 1.0},
		{"collapse whitespace", "  good   morning ", "Good morning.", nil, true, MatchExact, 1.0},
		{"quotes stripped", `"dog"`, "dog", nil, true, MatchExact, 1.0},
		{"acceptable", "hi", "hello", []string{"hi", "hey"}, true, MatchAcceptable, 0.9},
		{"acceptable normalized", "Hey!", "hello", []string{"hi", "hey"}, true, MatchAcceptable, 0.9},
		{"one typo", "helo", "hello", nil, true, MatchFuzzy, 0.8},
		{"too different", "help", "hello", nil, false, MatchNone, 0},
		{"empty", "", "hello", nil, false, MatchNone, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := MatchAnswer(tc.user, tc.correct, tc.acceptable, DefaultThreshold)
			assert.Equal(t, tc.wantMatch, m.Matched)
			assert.Equal(t, tc.wantType, m.Type)
			assert.InDelta(t, tc.wantScore, m.Score, 1e-9)
		})
	}
}

func TestMatchAnswer_ThresholdRespected(t *testing.T) {
	m := MatchAnswer("helo", "hello", nil, 0.95)
	assert.False(t, m.Matched)
	assert.Equal(t, MatchNone, m.Type)
}

func TestMatchJapanese(t *testing.T) {
	tests := []struct {
		name      string
		user      string
		correct   string
		wantMatch bool
		wantType  MatchType
	}{
		{"trailing full stop", "こんにちは。", "こんにちは", true, MatchExact},
		{"spaces and comma", "はい、 そうです", "はいそうです", true, MatchExact},
		{"ideographic space", "おはよう　ございます", "おはようございます", true, MatchExact},
		{"half-width katakana", "ｺｰﾋｰ", "コーヒー", true, MatchExact},
		{"one slip in long word", "ありがとうごさいます", "ありがとうございます", true, MatchFuzzy},
		{"one slip in short word", "いね", "いぬ", false, MatchNone},
		{"latin not case folded", "ABC", "abc", false, MatchNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := MatchJapanese(tc.user, tc.correct)
			assert.Equal(t, tc.wantMatch, m.Matched)
			assert.Equal(t, tc.wantType, m.Type)
		})
	}
}

func TestContainsJapanese(t *testing.T) {
	assert.True(t, ContainsJapanese("犬"))
	assert.True(t, ContainsJapanese("ねこ"))
	assert.True(t, ContainsJapanese("コーヒー"))
	assert.True(t, ContainsJapanese("I like 寿司"))
	assert.False(t, ContainsJapanese("dog"))
	assert.False(t, ContainsJapanese(""))
}
