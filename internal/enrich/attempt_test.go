package enrich

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
)

func TestDecodeAttempt_FromRecordedEvents(t *testing.T) {
	st := openStore(t)
	log, _ := test.NewNullLogger()
	mock := llm.NewMockProvider(
		sentence("猫が好きです。", "I like cats."),
		sentence("犬が好きです。", "I like dogs."),
	)
	e := New(llm.WithLogging(mock, "mock", st.EventRepo(), log), DefaultConfig(), log)

	ctx := context.Background()
	_, err := e.Sentence(ctx, dog)
	require.NoError(t, err)

	events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Purpose: llm.PurposeSentence})
	require.NoError(t, err)
	require.Len(t, events, 2)

	retry := DecodeAttempt(events[0])
	first := DecodeAttempt(events[1])

	assert.Equal(t, "犬", first.Word)
	assert.False(t, first.Retry())
	require.NotNil(t, first.Sentence)
	assert.Equal(t, "猫が好きです。", first.Sentence.Japanese)

	assert.Equal(t, "犬", retry.Word)
	assert.True(t, retry.Retry())
	assert.NotEmpty(t, retry.Feedback)
	require.NotNil(t, retry.Sentence)
	assert.Equal(t, "I like dogs.", retry.Sentence.Translation)
}

func TestDecodeAttempt_FailedRequest(t *testing.T) {
	a := DecodeAttempt(store.LLMEvent{
		ID: 7,
		LLMRequestEventData: store.LLMRequestEventData{
			Model:        "gpt-4o-mini",
			Success:      false,
			ErrorMessage: "rate limited",
			RequestBody:  "[user]\n" + buildUserMessage(dog, 40, ""),
		},
	})

	assert.Equal(t, 7, a.EventID)
	assert.Equal(t, "犬", a.Word)
	assert.Nil(t, a.Sentence)
	assert.Equal(t, "rate limited", a.Err)
}

func TestDecodeAttempt_UnparseableResponse(t *testing.T) {
	a := DecodeAttempt(store.LLMEvent{
		LLMRequestEventData: store.LLMRequestEventData{
			Success:      true,
			RequestBody:  buildUserMessage(dog, 40, ""),
			ResponseBody: "not json",
		},
	})
	assert.Equal(t, "犬", a.Word)
	assert.Nil(t, a.Sentence)
}
