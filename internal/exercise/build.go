package exercise

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/abhisek/kotoba/internal/distractor"
	"github.com/abhisek/kotoba/internal/vocab"
)

// ErrNotEnoughWords is returned when neither the bank nor the skill pool
// can supply the companion words an exercise needs.
var ErrNotEnoughWords = errors.New("not enough words in bank")

const matchPairs = 4

var sentenceTemplates = []string{
	"これは%sです。",
	"%sが好きです。",
	"毎日%sを使います。",
}

func (g *Generator) build(ctx context.Context, t Type, w vocab.Word, pool []vocab.Word, difficulty int) (Exercise, error) {
	switch t {
	case TypeMultipleChoice:
		return g.multipleChoice(ctx, w, difficulty)
	case TypeTranslation:
		return g.translation(w, difficulty), nil
	case TypeListen:
		return g.listen(ctx, w, difficulty)
	case TypeFillBlank:
		return g.fillBlank(ctx, w, difficulty)
	case TypeMatch:
		return g.match(ctx, w, pool, difficulty)
	case TypeWordOrder:
		return g.wordOrder(w, difficulty), nil
	case TypeWrite:
		return g.write(w, difficulty), nil
	case TypeSpeak:
		return g.speak(w, difficulty), nil
	}
	return nil, fmt.Errorf("unsupported exercise type %q", t)
}

func (g *Generator) direction(jpToEnWeight float64) Direction {
	if g.rng.Float64() < jpToEnWeight {
		return JapaneseToEnglish
	}
	return EnglishToJapanese
}

// options returns the correct answer mixed with three distractors and the
// index the correct answer landed on.
func (g *Generator) options(ctx context.Context, w vocab.Word, correct string, field distractor.Field) ([]string, int, error) {
	set, err := g.distractors.Generate(ctx, w, 3, field)
	if err != nil {
		return nil, 0, fmt.Errorf("distractors for %q: %w", w.Japanese, err)
	}
	if set.Degraded {
		g.log.WithField("word", w.Japanese).Debug("using fallback distractors")
	}
	opts, idx := TrackedShuffle(g.rng, append([]string{correct}, set.Values...), 0)
	return opts, idx, nil
}

func (g *Generator) multipleChoice(ctx context.Context, w vocab.Word, difficulty int) (*MultipleChoice, error) {
	ex := &MultipleChoice{
		Common:    g.common(TypeMultipleChoice, w, difficulty),
		Direction: g.direction(0.5),
	}
	field := distractor.FieldTranslation
	if ex.Direction == JapaneseToEnglish {
		ex.Question = fmt.Sprintf("What does %s mean?", w.Japanese)
		ex.CorrectAnswer = w.Translation
	} else {
		ex.Question = fmt.Sprintf("Which word means %q?", w.Translation)
		ex.CorrectAnswer = w.Japanese
		field = distractor.FieldJapanese
	}

	opts, idx, err := g.options(ctx, w, ex.CorrectAnswer, field)
	if err != nil {
		return nil, err
	}
	ex.Options, ex.CorrectIndex = opts, idx
	return ex, nil
}

func (g *Generator) translation(w vocab.Word, difficulty int) *Translation {
	ex := &Translation{
		Common:    g.common(TypeTranslation, w, difficulty),
		Direction: g.direction(0.5),
	}
	ex.Question, ex.CorrectAnswer, ex.AcceptableAnswers, ex.Hint = freeText(ex.Direction, w, "Translate")
	return ex
}

func (g *Generator) write(w vocab.Word, difficulty int) *Write {
	ex := &Write{
		Common:    g.common(TypeWrite, w, difficulty),
		Direction: g.direction(0.7),
	}
	ex.Question, ex.CorrectAnswer, ex.AcceptableAnswers, ex.Hint = freeText(ex.Direction, w, "Write")
	return ex
}

// freeText fills the prompt fields shared by translation and write.
func freeText(dir Direction, w vocab.Word, verb string) (question, correct string, acceptable []string, hint string) {
	if dir == JapaneseToEnglish {
		hint = w.Furigana
		if hint == "" {
			hint = "Think about how it is read."
		}
		return fmt.Sprintf("%s in English: %s", verb, w.Japanese), w.Translation, AcceptableVariants(w.Translation), hint
	}
	return fmt.Sprintf("%s in Japanese: %s", verb, w.Translation), w.Japanese, []string{},
		fmt.Sprintf("Think of a Japanese word that means %q.", w.Translation)
}

func (g *Generator) listen(ctx context.Context, w vocab.Word, difficulty int) (*Listen, error) {
	ex := &Listen{
		Common:          g.common(TypeListen, w, difficulty),
		AudioText:       w.Japanese,
		AudioURL:        g.audioURL(w.Japanese),
		CorrectAnswer:   w.Japanese,
		CorrectAnswerEn: w.Translation,
	}
	if g.rng.IntN(2) == 0 {
		ex.Mode = ListenType
		ex.Question = "Type what you hear."
		return ex, nil
	}

	ex.Mode = ListenSelect
	ex.Question = "Choose the word you hear."
	opts, idx, err := g.options(ctx, w, w.Japanese, distractor.FieldJapanese)
	if err != nil {
		return nil, err
	}
	ex.Options, ex.CorrectIndex = opts, idx
	return ex, nil
}

func (g *Generator) audioURL(text string) string {
	if g.cfg.TTSURL == "" {
		return ""
	}
	u, err := url.Parse(g.cfg.TTSURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("q", text)
	u.RawQuery = q.Encode()
	return u.String()
}

func (g *Generator) fillBlank(ctx context.Context, w vocab.Word, difficulty int) (*FillBlank, error) {
	sentence := w.Sentence
	if !strings.Contains(sentence, w.Japanese) {
		sentence = fmt.Sprintf(sentenceTemplates[g.rng.IntN(len(sentenceTemplates))], w.Japanese)
	}
	before, after, _ := strings.Cut(sentence, w.Japanese)

	blank := Blank{
		Index:             0,
		CorrectAnswer:     w.Japanese,
		AcceptableAnswers: []string{},
	}
	if w.Furigana != "" && w.Furigana != w.Japanese {
		blank.AcceptableAnswers = append(blank.AcceptableAnswers, w.Furigana)
	}
	if g.rng.IntN(2) == 0 {
		opts, _, err := g.options(ctx, w, w.Japanese, distractor.FieldJapanese)
		if err != nil {
			return nil, err
		}
		blank.Options = opts
	}

	return &FillBlank{
		Common:      g.common(TypeFillBlank, w, difficulty),
		Sentence:    before + BlankMarker + after,
		Translation: w.Translation,
		Blanks:      []Blank{blank},
	}, nil
}

// match pairs the target with the first three other bank words whose
// texts do not collide with a pair already chosen.
func (g *Generator) match(ctx context.Context, w vocab.Word, pool []vocab.Word, difficulty int) (*Match, error) {
	// Companions come from the whole bank. The skill pool is scanned after
	// it, which covers the kana tables that are not part of the bank.
	bank, err := g.bank.Words(ctx)
	if err != nil {
		g.log.WithError(err).Debug("bank unavailable for match, using skill pool")
	}

	chosen := []vocab.Word{w}
	for _, c := range slices.Concat(bank, pool) {
		if len(chosen) == matchPairs {
			break
		}
		if collides(chosen, c) {
			continue
		}
		chosen = append(chosen, c)
	}
	if len(chosen) < matchPairs {
		return nil, fmt.Errorf("match for %q: %w", w.Japanese, ErrNotEnoughWords)
	}

	pairs := make([]Pair, len(chosen))
	for i, c := range chosen {
		pairs[i] = Pair{ID: fmt.Sprintf("pair-%d", i+1), Japanese: c.Japanese, Translation: c.Translation}
	}
	pairs, _ = TrackedShuffle(g.rng, pairs, -1)

	return &Match{
		Common: g.common(TypeMatch, w, difficulty),
		Pairs:  pairs,
	}, nil
}

func collides(chosen []vocab.Word, c vocab.Word) bool {
	for _, w := range chosen {
		if w.Japanese == c.Japanese || strings.EqualFold(w.Translation, c.Translation) {
			return true
		}
	}
	return false
}

// wordOrder embeds the word in a fixed six-token frame. The frame is not
// adapted to the word's part of speech.
func (g *Generator) wordOrder(w vocab.Word, difficulty int) *WordOrder {
	tokens := []string{"私", "は", "毎日", w.Japanese, "を", "勉強します"}

	perm := g.rng.Perm(len(tokens))
	words := make([]string, len(tokens))
	order := make([]int, len(tokens))
	for pos, src := range perm {
		words[pos] = tokens[src]
		order[src] = pos
	}

	return &WordOrder{
		Common:       g.common(TypeWordOrder, w, difficulty),
		Sentence:     strings.Join(tokens, ""),
		Translation:  fmt.Sprintf("I study %q every day.", w.Translation),
		Words:        words,
		CorrectOrder: order,
	}
}

// Speak builds a pronunciation exercise for w. Speak exercises are only
// part of a generated set when requested explicitly.
func (g *Generator) Speak(w vocab.Word, difficulty int) *Speak {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speak(w, min(max(difficulty, 1), 5))
}

func (g *Generator) speak(w vocab.Word, difficulty int) *Speak {
	return &Speak{
		Common:        g.common(TypeSpeak, w, difficulty),
		Question:      fmt.Sprintf("Say %q in Japanese.", w.Translation),
		CorrectAnswer: w.Japanese,
		Reading:       w.Reading(),
	}
}
