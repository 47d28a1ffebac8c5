package enrich

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/kotoba/internal/fuzzy"
	"github.com/abhisek/kotoba/internal/vocab"
)

// Validator checks a generated sentence. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(s *Sentence, w vocab.Word, cfg Config) *ValidationError
}

// ValidationError describes why a sentence was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks presence and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(s *Sentence, _ vocab.Word, cfg Config) *ValidationError {
	switch {
	case strings.TrimSpace(s.Japanese) == "":
		return &ValidationError{Validator: v.Name(), Message: "japanese is empty", Retryable: true}
	case strings.TrimSpace(s.Translation) == "":
		return &ValidationError{Validator: v.Name(), Message: "translation is empty", Retryable: true}
	case cfg.MaxRunes > 0 && utf8.RuneCountInString(s.Japanese) > cfg.MaxRunes:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("sentence exceeds %d characters", cfg.MaxRunes),
			Retryable: true,
		}
	case strings.Contains(s.Japanese, "\n"):
		return &ValidationError{Validator: v.Name(), Message: "sentence spans several lines", Retryable: true}
	}
	return nil
}

// ContainsWordValidator requires the word's written form in the sentence.
// Fill-in-the-blank exercises blank out exactly that text.
type ContainsWordValidator struct{}

func (v *ContainsWordValidator) Name() string { return "contains-word" }

func (v *ContainsWordValidator) Validate(s *Sentence, w vocab.Word, _ Config) *ValidationError {
	if !strings.Contains(s.Japanese, w.Japanese) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("sentence does not contain %q", w.Japanese),
			Retryable: true,
		}
	}
	return nil
}

// ScriptValidator rejects sentences that are not Japanese or mix in Latin
// letters.
type ScriptValidator struct{}

func (v *ScriptValidator) Name() string { return "script" }

func (v *ScriptValidator) Validate(s *Sentence, w vocab.Word, _ Config) *ValidationError {
	if !fuzzy.ContainsJapanese(s.Japanese) {
		return &ValidationError{Validator: v.Name(), Message: "sentence is not Japanese", Retryable: true}
	}
	// Words such as "Tシャツ" legitimately carry Latin letters.
	rest := strings.ReplaceAll(s.Japanese, w.Japanese, "")
	for _, r := range rest {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return &ValidationError{Validator: v.Name(), Message: "sentence contains Latin letters", Retryable: true}
		}
	}
	return nil
}
