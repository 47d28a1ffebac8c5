package enrich

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/abhisek/kotoba/internal/store"
)

// Attempt is one recorded sentence request, decoded from its LLM event.
type Attempt struct {
	EventID      int
	Time         time.Time
	Model        string
	Word         string
	Feedback     string    // rejection reason sent with a retry
	Sentence     *Sentence // nil when the request failed or the reply was not JSON
	Err          string
	InputTokens  int
	OutputTokens int
}

// Retry reports whether the attempt followed a rejected sentence.
func (a Attempt) Retry() bool { return a.Feedback != "" }

// DecodeAttempt recovers the word, the feedback and the returned sentence
// from a sentence event.
func DecodeAttempt(e store.LLMEvent) Attempt {
	a := Attempt{
		EventID:      e.ID,
		Time:         e.Timestamp,
		Model:        e.Model,
		Err:          e.ErrorMessage,
		InputTokens:  e.InputTokens,
		OutputTokens: e.OutputTokens,
	}
	for _, line := range strings.Split(e.RequestBody, "\n") {
		switch {
		case a.Word == "" && strings.HasPrefix(line, wordLine):
			a.Word = strings.TrimSpace(strings.TrimPrefix(line, wordLine))
		case strings.HasPrefix(line, feedbackLine):
			a.Feedback = strings.TrimSpace(strings.TrimPrefix(line, feedbackLine))
		}
	}
	if e.Success && e.ResponseBody != "" {
		var s Sentence
		if err := json.Unmarshal([]byte(e.ResponseBody), &s); err == nil && s.Japanese != "" {
			a.Sentence = &s
		}
	}
	return a
}
