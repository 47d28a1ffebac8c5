package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/vocab"
)

// Enricher generates example sentences with an LLM.
type Enricher struct {
	provider llm.Provider
	config   Config
	log      logrus.FieldLogger
}

func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Enricher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Enricher{provider: provider, config: cfg, log: log.WithField("component", "enrich")}
}

// Sentence generates one validated example sentence for w. A rejected
// sentence is retried with the rejection reason fed back to the model.
func (e *Enricher) Sentence(ctx context.Context, w vocab.Word) (*Sentence, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSentence)
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	var (
		feedback string
		lastErr  error
	)
	for range e.config.MaxAttempts {
		s, err := e.generate(ctx, w, feedback)
		if err == nil {
			return s, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		feedback = verr.Message
		e.log.WithFields(logrus.Fields{
			"word":      w.Japanese,
			"validator": verr.Validator,
		}).Debug(verr.Message)
	}
	return nil, lastErr
}

func (e *Enricher) generate(ctx context.Context, w vocab.Word, feedback string) (*Sentence, error) {
	req := llm.Prompt(systemPrompt, buildUserMessage(w, e.config.MaxRunes, feedback))
	req.Schema = SentenceSchema
	req.MaxTokens = e.config.MaxTokens
	req.Temperature = e.config.Temperature

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var s Sentence
	if err := json.Unmarshal(resp.Content, &s); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	for _, v := range e.config.Validators {
		if verr := v.Validate(&s, w, e.config); verr != nil {
			return nil, verr
		}
	}
	return &s, nil
}

// EnrichMissing fills in sentences for up to limit words that lack one
// (0 = all). A word that fails is logged and skipped. The returned error
// is non-nil only when the store itself fails or ctx ends.
func (e *Enricher) EnrichMissing(ctx context.Context, st Store, limit int) (Report, error) {
	words, err := st.WordsMissingSentence(ctx, limit)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Candidates: len(words)}
	for _, sw := range words {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		s, err := e.Sentence(ctx, sw.Word)
		if err != nil {
			rep.Failed++
			e.log.WithField("word", sw.Japanese).WithError(err).Warn("skipping word")
			continue
		}
		if err := st.SetSentence(ctx, sw.ID, s.Japanese); err != nil {
			return rep, err
		}
		rep.Enriched++
		e.log.WithFields(logrus.Fields{
			"word":     sw.Japanese,
			"sentence": s.Japanese,
		}).Info("sentence added")
	}
	return rep, nil
}
