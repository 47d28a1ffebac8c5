package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/enrich"
)

func TestEnrichmentByDay(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 10, d, h, 0, 0, 0, time.Local) }
	ok := &enrich.Sentence{Japanese: "犬が好きです。", Translation: "I like dogs."}

	attempts := []enrich.Attempt{
		{Time: day(15, 9), Model: "gpt-4o-mini", Word: "犬", Sentence: ok, InputTokens: 1_000_000},
		{Time: day(15, 9), Model: "gpt-4o-mini", Word: "犬", Feedback: "missing word", Sentence: ok, OutputTokens: 1_000_000},
		{Time: day(15, 10), Model: "gpt-4o-mini", Word: "猫", Err: "timeout"},
		{Time: day(14, 20), Model: "local-llama", Word: "水", Sentence: ok, InputTokens: 50},
	}

	days := enrichmentByDay(attempts)
	require.Len(t, days, 2)

	newest := days[0]
	assert.Equal(t, "2026-10-15", newest.Day)
	assert.Equal(t, 3, newest.Attempts)
	assert.Equal(t, 1, newest.Retries)
	assert.Equal(t, 1, newest.Failed)
	assert.Equal(t, 2, newest.Words)
	assert.True(t, newest.Priced)
	assert.InDelta(t, 0.15+0.6, newest.Cost, 1e-9)

	assert.Equal(t, "2026-10-14", days[1].Day)
	assert.False(t, days[1].Priced, "unknown model has no pricing")
	assert.Equal(t, "?", costLabel(days[1].Cost, days[1].Priced))
}

func TestAttemptResult(t *testing.T) {
	s := &enrich.Sentence{Japanese: "猫がいます。"}
	assert.Equal(t, "猫がいます。", attemptResult(enrich.Attempt{Sentence: s}))
	assert.Equal(t, "↻ 猫がいます。", attemptResult(enrich.Attempt{Sentence: s, Feedback: "too long"}))
	assert.Equal(t, "✗ timeout", attemptResult(enrich.Attempt{Err: "timeout"}))
	assert.Equal(t, "✗ unreadable response", attemptResult(enrich.Attempt{}))
}

func TestTruncate_Runes(t *testing.T) {
	assert.Equal(t, "犬が", truncate("犬が好き", 2))
	assert.Equal(t, "abc", truncate("abc", 5))
}
