package exercise

import (
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/kotoba/internal/fuzzy"
)

// commonVariants maps normalized translations to answers that mean the same
// thing in everyday English.
var commonVariants = map[string][]string{
	"hello":               {"hi", "hey"},
	"good morning":        {"morning"},
	"good afternoon":      {"hello", "good day"},
	"good evening":        {"evening"},
	"good night":          {"night", "goodnight"},
	"goodbye":             {"bye", "see you"},
	"see you later":       {"see you", "bye"},
	"thank you":           {"thanks", "thank you very much", "thanks a lot"},
	"thank you very much": {"thank you", "thanks a lot"},
	"excuse me":           {"sorry", "pardon me"},
	"sorry":               {"i'm sorry", "excuse me"},
	"nice to meet you":    {"pleased to meet you"},
	"yes":                 {"yeah", "yep"},
	"no":                  {"nope"},
	"you're welcome":      {"no problem", "not at all"},
}

// AcceptableVariants builds the alternative answers accepted for a
// translation. Slash, comma and semicolon separated alternatives are
// accepted individually, verbs are accepted without a leading "to", and
// common greetings pick up their informal forms.
func AcceptableVariants(translation string) []string {
	full := fuzzy.Normalize(translation)
	if full == "" {
		return []string{}
	}

	alternatives := []string{full}
	parts := strings.FieldsFunc(translation, func(r rune) bool {
		return r == '/' || r == ',' || r == ';'
	})
	if len(parts) > 1 {
		alternatives = lo.FilterMap(parts, func(p string, _ int) (string, bool) {
			n := fuzzy.Normalize(p)
			return n, n != ""
		})
	}

	var out []string
	for _, alt := range alternatives {
		if alt != full {
			out = append(out, alt)
		}
		if rest, ok := strings.CutPrefix(alt, "to "); ok && rest != "" {
			out = append(out, rest)
		}
		out = append(out, commonVariants[alt]...)
	}

	return lo.Filter(lo.Uniq(out), func(v string, _ int) bool {
		return v != full
	})
}
