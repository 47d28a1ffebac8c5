package enrich

import (
	"strings"
	"testing"

	"github.com/abhisek/kotoba/internal/vocab"
)

func TestValidators(t *testing.T) {
	cfg := DefaultConfig()
	tshirt := vocab.Word{Japanese: "Tシャツ", Translation: "T-shirt"}

	tests := []struct {
		name string
		s    Sentence
		w    vocab.Word
		want string // failing validator, "" for pass
	}{
		{"valid", Sentence{"犬が好きです。", "I like dogs."}, dog, ""},
		{"empty japanese", Sentence{"", "I like dogs."}, dog, "structural"},
		{"empty translation", Sentence{"犬です。", " "}, dog, "structural"},
		{"too long", Sentence{strings.Repeat("犬", 41), "dogs"}, dog, "structural"},
		{"multi-line", Sentence{"犬です。\n猫です。", "x"}, dog, "structural"},
		{"missing word", Sentence{"いぬが好きです。", "I like dogs."}, dog, "contains-word"},
		{"romaji", Sentence{"犬 ga suki desu", "I like dogs."}, dog, "script"},
		{"latin word allowed", Sentence{"Tシャツを買いました。", "I bought a T-shirt."}, tshirt, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ""
			for _, v := range cfg.Validators {
				if verr := v.Validate(&tt.s, tt.w, cfg); verr != nil {
					got = verr.Validator
					if !verr.Retryable {
						t.Errorf("%s: expected retryable error", verr.Validator)
					}
					break
				}
			}
			if got != tt.want {
				t.Errorf("failing validator = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScriptValidator_NotJapanese(t *testing.T) {
	v := &ScriptValidator{}
	if verr := v.Validate(&Sentence{Japanese: "!!!"}, dog, DefaultConfig()); verr == nil {
		t.Fatal("expected rejection")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "script", Message: "sentence is not Japanese"}
	want := `validator "script": sentence is not Japanese`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	names := []string{"structural", "contains-word", "script"}
	cfg := DefaultConfig()
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}
