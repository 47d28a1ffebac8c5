package exercise

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/distractor"
	"github.com/abhisek/kotoba/internal/vocab"
)

// WordBank supplies the word pools exercises are built from.
type WordBank interface {
	Words(ctx context.Context) ([]vocab.Word, error)
	WordsForDay(ctx context.Context, day int) ([]vocab.Word, error)
}

// DistractorSource produces wrong answers for choice-style exercises.
type DistractorSource interface {
	Generate(ctx context.Context, target vocab.Word, count int, field distractor.Field) (distractor.Set, error)
}

// Config controls the behavior of the Generator.
type Config struct {
	// HistoryCap bounds the recently used word set. The set is cleared
	// once it reaches this size.
	HistoryCap int

	// TTSURL is the base URL for listen audio. The Japanese text is
	// appended as the "q" query parameter.
	TTSURL string

	// Rand drives every random choice. Nil seeds from the runtime.
	Rand *rand.Rand

	// Now stamps exercise IDs. Nil uses time.Now.
	Now func() time.Time
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		HistoryCap: 100,
		TTSURL:     "https://translate.google.com/translate_tts?ie=UTF-8&client=tw-ob&tl=ja",
	}
}

// Generator builds exercise sets. It is safe for concurrent use; calls
// are serialized on an internal mutex.
type Generator struct {
	bank        WordBank
	kana        vocab.KanaTable
	distractors DistractorSource
	cfg         Config
	log         logrus.FieldLogger

	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	history map[string]struct{}
}

// NewGenerator creates a Generator. kana may be nil, in which case kana
// skills resolve to an empty pool.
func NewGenerator(bank WordBank, kana vocab.KanaTable, distractors DistractorSource, cfg Config, log logrus.FieldLogger) *Generator {
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = DefaultConfig().HistoryCap
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		bank:        bank,
		kana:        kana,
		distractors: distractors,
		cfg:         cfg,
		log:         log,
		rng:         rng,
		now:         now,
		history:     make(map[string]struct{}),
	}
}

// TypesFor returns the exercise types unlocked at a difficulty level.
func TypesFor(difficulty int) []Type {
	switch {
	case difficulty <= 1:
		return []Type{TypeMultipleChoice, TypeTranslation}
	case difficulty <= 3:
		return []Type{TypeMultipleChoice, TypeTranslation, TypeListen, TypeFillBlank, TypeWrite}
	}
	return append([]Type(nil), AllTypes...)
}

// GenerateSet builds up to count exercises for a skill. Types cycle
// round-robin over the explicit types, or over TypesFor(difficulty) when
// none are given. An exercise that fails to build is logged and skipped,
// so the result may be shorter than count. It never returns nil.
func (g *Generator) GenerateSet(ctx context.Context, skillID string, count, difficulty int, types ...Type) []Exercise {
	out := []Exercise{}
	if count <= 0 {
		return out
	}
	difficulty = min(max(difficulty, 1), 5)
	if len(types) == 0 {
		types = TypesFor(difficulty)
	}

	pool := g.Pool(ctx, skillID)
	if len(pool) == 0 {
		g.log.WithField("skill", skillID).Info("no words available for skill")
		return out
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range count {
		if ctx.Err() != nil {
			break
		}
		t := types[i%len(types)]
		w := g.pickWord(pool)

		ex, err := g.build(ctx, t, w, pool, difficulty)
		if err != nil {
			g.log.WithError(err).WithFields(logrus.Fields{
				"index": i,
				"type":  t,
				"word":  w.Japanese,
			}).Warn("skipping exercise")
			continue
		}
		out = append(out, ex)
	}
	return out
}

// ResetHistory forgets the recently used words.
func (g *Generator) ResetHistory() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.history)
}

var dayPattern = regexp.MustCompile(`^day-(\d+)`)

// Pool resolves a skill ID to its word pool. "day-N" selects a day list,
// "kana" and "kana-*" select the kana table, and anything else the whole
// bank. Load errors are logged and produce an empty pool.
func (g *Generator) Pool(ctx context.Context, skillID string) []vocab.Word {
	var (
		words []vocab.Word
		err   error
	)
	switch {
	case skillID == "kana" || strings.HasPrefix(skillID, "kana-"):
		words = g.kanaWords(skillID)
	case dayPattern.MatchString(skillID):
		day, _ := strconv.Atoi(dayPattern.FindStringSubmatch(skillID)[1])
		words, err = g.bank.WordsForDay(ctx, day)
	default:
		words, err = g.bank.Words(ctx)
	}
	if err != nil {
		g.log.WithError(err).WithField("skill", skillID).Warn("failed to load words")
		return nil
	}
	return words
}

func (g *Generator) kanaWords(skillID string) []vocab.Word {
	if g.kana == nil {
		return nil
	}
	var table []vocab.Kana
	switch skillID {
	case "kana-hiragana":
		table = g.kana.Hiragana()
	case "kana-katakana":
		table = g.kana.Katakana()
	default:
		table = append(g.kana.Hiragana(), g.kana.Katakana()...)
	}
	return lo.Map(table, func(k vocab.Kana, _ int) vocab.Word { return k.Word() })
}

// pickWord chooses uniformly among words not used recently, falling back
// to the whole pool once every word has been used.
func (g *Generator) pickWord(pool []vocab.Word) vocab.Word {
	eligible := lo.Filter(pool, func(w vocab.Word, _ int) bool {
		_, seen := g.history[w.Key()]
		return !seen
	})
	if len(eligible) == 0 {
		eligible = pool
	}
	w := eligible[g.rng.IntN(len(eligible))]

	if len(g.history) >= g.cfg.HistoryCap {
		clear(g.history)
	}
	g.history[w.Key()] = struct{}{}
	return w
}

func (g *Generator) newID() string {
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + strconv.FormatUint(g.rng.Uint64(), 36)
}

func (g *Generator) common(t Type, w vocab.Word, difficulty int) Common {
	return Common{
		ID:          g.newID(),
		Type:        t,
		Difficulty:  difficulty,
		Points:      Points(t),
		Word:        w,
		Explanation: explain(w),
	}
}

func explain(w vocab.Word) string {
	if w.Furigana != "" && w.Furigana != w.Japanese {
		return w.Japanese + " (" + w.Furigana + ") means \"" + w.Translation + "\"."
	}
	return w.Japanese + " means \"" + w.Translation + "\"."
}
