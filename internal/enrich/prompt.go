package enrich

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/vocab"
)

const systemPrompt = `You write example sentences for beginner learners of Japanese (JLPT N5-N4).

Rules:
- Write exactly one short sentence in natural, polite Japanese (です/ます form).
- The sentence must contain the given word exactly as written, in the same script.
- Use only common vocabulary and simple grammar around the word.
- Do not use romaji, furigana in brackets, or any Latin letters in the Japanese sentence.
- End the sentence with 。 or ？.
- Give a natural English translation.`

const (
	wordLine     = "Word: "
	feedbackLine = "Your previous sentence was rejected: "
)

func buildUserMessage(w vocab.Word, maxRunes int, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", wordLine, w.Japanese)
	if w.Furigana != "" && w.Furigana != w.Japanese {
		fmt.Fprintf(&b, "Reading: %s\n", w.Furigana)
	}
	fmt.Fprintf(&b, "Meaning: %s\n", w.Translation)
	fmt.Fprintf(&b, "Maximum length: %d characters\n", maxRunes)
	if feedback != "" {
		fmt.Fprintf(&b, "\n%s%s\n", feedbackLine, feedback)
	}
	return b.String()
}
