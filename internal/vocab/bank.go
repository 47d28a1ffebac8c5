package vocab

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Bank caches the full word list of a Provider. The list is loaded on first
// use and shared read-only afterwards. A failed load is not cached, so the
// next caller retries.
type Bank struct {
	provider Provider
	log      logrus.FieldLogger

	mu     sync.Mutex
	loaded bool
	words  []Word
	days   map[int][]Word
}

// NewBank creates a Bank backed by provider.
func NewBank(provider Provider, log logrus.FieldLogger) *Bank {
	return &Bank{
		provider: provider,
		log:      log,
		days:     make(map[int][]Word),
	}
}

// Words returns the cached word list, loading it on first call.
func (b *Bank) Words(ctx context.Context) ([]Word, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded {
		return b.words, nil
	}
	if b.provider == nil {
		return nil, fmt.Errorf("no word provider configured")
	}

	words, err := b.provider.Words(ctx)
	if err != nil {
		b.log.WithError(err).Warn("word bank load failed")
		return nil, fmt.Errorf("load word bank: %w", err)
	}

	b.words = words
	b.loaded = true
	b.log.WithField("words", len(words)).Debug("word bank loaded")
	return b.words, nil
}

// WordsForDay returns the cached list for a study day.
func (b *Bank) WordsForDay(ctx context.Context, day int) ([]Word, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if words, ok := b.days[day]; ok {
		return words, nil
	}
	if b.provider == nil {
		return nil, fmt.Errorf("no word provider configured")
	}

	words, err := b.provider.WordsForDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load day %d: %w", day, err)
	}
	b.days[day] = words
	return words, nil
}

// Reset drops all cached lists so the next call reloads from the provider.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = false
	b.words = nil
	b.days = make(map[int][]Word)
}
