package enrich

import "time"

type Config struct {
	// Validators run in order on every generated sentence; the first
	// failure rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxAttempts bounds generation per word when validation fails with a
	// retryable error.
	MaxAttempts int

	// MaxRunes caps the sentence length.
	MaxRunes int

	// Timeout bounds one word, retries included. 0 means no limit.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ContainsWordValidator{},
			&ScriptValidator{},
		},
		MaxTokens:   256,
		Temperature: 0.7,
		MaxAttempts: 2,
		MaxRunes:    40,
		Timeout:     30 * time.Second,
	}
}
