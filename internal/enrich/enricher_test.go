package enrich

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

var dog = vocab.Word{Japanese: "犬", Furigana: "いぬ", Translation: "dog"}

func sentence(jp, en string) llm.MockResponse {
	return llm.MockJSON(Sentence{Japanese: jp, Translation: en})
}

func newEnricher(t *testing.T, responses ...llm.MockResponse) (*Enricher, *llm.MockProvider) {
	t.Helper()
	log, _ := test.NewNullLogger()
	mock := llm.NewMockProvider(responses...)
	return New(mock, DefaultConfig(), log), mock
}

func TestSentence_Valid(t *testing.T) {
	e, mock := newEnricher(t, sentence("犬が好きです。", "I like dogs."))

	s, err := e.Sentence(context.Background(), dog)
	require.NoError(t, err)
	assert.Equal(t, "犬が好きです。", s.Japanese)
	assert.Equal(t, "I like dogs.", s.Translation)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, SentenceSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Word: 犬")
	assert.Contains(t, req.Messages[0].Content, "Reading: いぬ")
	assert.Contains(t, req.Messages[0].Content, "Meaning: dog")
}

func TestSentence_RetriesWithFeedback(t *testing.T) {
	e, mock := newEnricher(t,
		sentence("猫が好きです。", "I like cats."),
		sentence("犬が好きです。", "I like dogs."),
	)

	s, err := e.Sentence(context.Background(), dog)
	require.NoError(t, err)
	assert.Equal(t, "犬が好きです。", s.Japanese)
	require.Equal(t, 2, mock.CallCount())
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "previous sentence was rejected")
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "rejected")
}

func TestSentence_GivesUpAfterMaxAttempts(t *testing.T) {
	e, mock := newEnricher(t,
		sentence("猫です。", "A cat."),
		sentence("鳥です。", "A bird."),
		sentence("犬です。", "A dog."),
	)

	_, err := e.Sentence(context.Background(), dog)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contains-word", verr.Validator)
	assert.Equal(t, 2, mock.CallCount())
}

func TestSentence_ProviderErrorNotRetried(t *testing.T) {
	e, mock := newEnricher(t, llm.MockResponse{Err: errors.New("boom")})

	_, err := e.Sentence(context.Background(), dog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM generation failed")
	assert.Equal(t, 1, mock.CallCount())
}

func TestSentence_SchemaViolation(t *testing.T) {
	e, _ := newEnricher(t, llm.MockJSON(map[string]string{"japanese": "犬です。"}))

	_, err := e.Sentence(context.Background(), dog)
	var invErr *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invErr)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "enrich.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEnrichMissing(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	_, err := st.WordRepo().Upsert(ctx, 1, []vocab.Word{
		dog,
		{Japanese: "猫", Furigana: "ねこ", Translation: "cat"},
		{Japanese: "水", Furigana: "みず", Translation: "water", Sentence: "水を飲みます。"},
	})
	require.NoError(t, err)

	e, mock := newEnricher(t,
		sentence("犬が走ります。", "The dog runs."),
		llm.MockResponse{Err: errors.New("boom")},
	)

	rep, err := e.EnrichMissing(ctx, st.WordRepo(), 0)
	require.NoError(t, err)
	assert.Equal(t, Report{Candidates: 2, Enriched: 1, Failed: 1}, rep)
	assert.Equal(t, 2, mock.CallCount())

	words, err := st.WordRepo().Words(ctx)
	require.NoError(t, err)
	got := map[string]string{}
	for _, w := range words {
		got[w.Japanese] = w.Sentence
	}
	assert.Equal(t, "犬が走ります。", got["犬"])
	assert.Empty(t, got["猫"])
	assert.Equal(t, "水を飲みます。", got["水"])
}

func TestEnrichMissing_Limit(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	_, err := st.WordRepo().Upsert(ctx, 1, []vocab.Word{dog, {Japanese: "猫", Translation: "cat"}})
	require.NoError(t, err)

	e, mock := newEnricher(t, sentence("犬がいます。", "There is a dog."))
	rep, err := e.EnrichMissing(ctx, st.WordRepo(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Candidates)
	assert.Equal(t, 1, mock.CallCount())
}

func TestEnrichMissing_Cancelled(t *testing.T) {
	st := openStore(t)
	_, err := st.WordRepo().Upsert(context.Background(), 1, []vocab.Word{dog})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	words, err := st.WordRepo().WordsMissingSentence(ctx, 0)
	require.NoError(t, err)
	require.Len(t, words, 1)
	cancel()

	e, mock := newEnricher(t)
	_, err = e.EnrichMissing(ctx, cancelledAfterLoad{st.WordRepo(), words}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mock.CallCount())
}

// cancelledAfterLoad returns a preloaded list so the cancelled context
// only takes effect inside the loop.
type cancelledAfterLoad struct {
	*store.WordRepo
	words []store.StoredWord
}

func (c cancelledAfterLoad) WordsMissingSentence(context.Context, int) ([]store.StoredWord, error) {
	return c.words, nil
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(vocab.Word{Japanese: "ありがとう", Translation: "thank you"}, 40, "")
	assert.NotContains(t, msg, "Reading:")
	assert.True(t, strings.HasPrefix(msg, "Word: ありがとう\n"))
	assert.Contains(t, msg, "Maximum length: 40 characters")
}
