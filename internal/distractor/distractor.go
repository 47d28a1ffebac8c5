// Package distractor picks plausible wrong answers for choice-based exercises.
package distractor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/vocab"
)

// WordSource supplies the word bank. *vocab.Bank satisfies it.
type WordSource interface {
	Words(ctx context.Context) ([]vocab.Word, error)
}

// Field selects which side of a word the distractors are drawn from.
type Field string

const (
	FieldTranslation Field = "translation"
	FieldJapanese    Field = "japanese"
)

// Of returns the field's value for w.
func (f Field) Of(w vocab.Word) string {
	if f == FieldJapanese {
		return w.Japanese
	}
	return w.Translation
}

// Set is a list of distractors. Degraded is true when some values were
// synthesized from the correct answer instead of drawn from the bank.
type Set struct {
	Values   []string
	Degraded bool
}

// Config bounds the candidate pools.
type Config struct {
	// PoolCap caps the similar-word pool.
	PoolCap int

	// SampleSize is the number of unrelated words sampled at random.
	SampleSize int

	// Rand is the randomness source. Nil seeds a new one from the clock.
	Rand *rand.Rand
}

// DefaultConfig returns the standard pool sizes.
func DefaultConfig() Config {
	return Config{
		PoolCap:    20,
		SampleSize: 10,
	}
}

// Generator draws distractors from a word bank.
type Generator struct {
	source WordSource
	cfg    Config
	log    logrus.FieldLogger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator over source.
func New(source WordSource, cfg Config, log logrus.FieldLogger) *Generator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return &Generator{source: source, cfg: cfg, log: log, rng: rng}
}

// Generate returns exactly count distractors for target, none equal to each
// other or to the correct answer. When the bank cannot supply enough, text
// transforms of the correct answer fill the remainder and the set is
// marked Degraded.
func (g *Generator) Generate(ctx context.Context, target vocab.Word, count int, field Field) (Set, error) {
	if count < 0 {
		return Set{}, fmt.Errorf("invalid distractor count %d", count)
	}
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	if count == 0 {
		return Set{Values: []string{}}, nil
	}

	var words []vocab.Word
	if g.source != nil {
		var err error
		words, err = g.source.Words(ctx)
		if err != nil {
			g.log.WithError(err).Warn("word bank unavailable, using text-transform distractors")
			words = nil
		}
	}

	correct := field.Of(target)
	seen := map[string]bool{dedupKey(correct): true}
	values := make([]string, 0, count)
	add := func(v string) bool {
		k := dedupKey(v)
		if k == "" || seen[k] {
			return false
		}
		seen[k] = true
		values = append(values, v)
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(words) > 0 {
		for _, w := range g.candidates(words, target) {
			if len(values) == count {
				break
			}
			add(field.Of(w))
		}

		// Top up with uniform picks from the whole bank. Walking a random
		// permutation tries every word at most once.
		for _, i := range g.rng.Perm(len(words)) {
			if len(values) == count {
				break
			}
			if words[i].Key() == target.Key() {
				continue
			}
			add(field.Of(words[i]))
		}
	}

	degraded := false
	if len(values) < count {
		for _, v := range transforms(correct) {
			if len(values) == count {
				break
			}
			if add(v) {
				degraded = true
			}
		}
		for n := 2; len(values) < count; n++ {
			if add(fmt.Sprintf("%s (%d)", correct, n)) {
				degraded = true
			}
		}
		g.log.WithFields(logrus.Fields{
			"answer": correct,
			"bank":   len(words),
		}).Debug("distractors padded with text transforms")
	}

	return Set{Values: values, Degraded: degraded}, nil
}

// candidates merges the similar-word pool and a random sample, removes the
// target and shuffles the result.
func (g *Generator) candidates(words []vocab.Word, target vocab.Word) []vocab.Word {
	targetKey := target.Key()
	first := firstRune(target.Translation)
	length := utf8.RuneCountInString(target.Translation)

	var similar []vocab.Word
	for _, i := range g.rng.Perm(len(words)) {
		if len(similar) >= g.cfg.PoolCap {
			break
		}
		w := words[i]
		if w.Key() == targetKey {
			continue
		}
		sameFirst := first != 0 && firstRune(w.Translation) == first
		diff := utf8.RuneCountInString(w.Translation) - length
		if sameFirst || (diff >= -2 && diff <= 2) {
			similar = append(similar, w)
		}
	}

	var sample []vocab.Word
	for _, i := range g.rng.Perm(len(words)) {
		if len(sample) >= g.cfg.SampleSize {
			break
		}
		if words[i].Key() != targetKey {
			sample = append(sample, words[i])
		}
	}

	merged := lo.UniqBy(append(similar, sample...), vocab.Word.Key)
	g.rng.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})
	return merged
}

// transforms derives fallback distractors from the correct answer:
// reversed token order, plural, negation and truncation.
func transforms(correct string) []string {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return nil
	}

	var out []string
	if tokens := strings.Fields(correct); len(tokens) > 1 {
		out = append(out, strings.Join(lo.Reverse(tokens), " "))
	}
	out = append(out, pluralize(correct), "not "+correct)

	if runes := []rune(correct); len(runes) > 1 {
		out = append(out, string(runes[:(len(runes)+1)/2]))
	}
	return out
}

func pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "ch"):
		return s + "es"
	default:
		return s + "s"
	}
}

func firstRune(s string) rune {
	for _, r := range strings.TrimSpace(s) {
		return unicode.ToLower(r)
	}
	return 0
}

func dedupKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
