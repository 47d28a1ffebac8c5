package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func sentenceSchema() *Schema {
	return &Schema{
		Name: "test-sentence",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"japanese":    map[string]any{"type": "string", "minLength": 1},
				"translation": map[string]any{"type": "string"},
				"level":       map[string]any{"type": "string", "enum": []string{"N5", "N4", "N3"}},
				"tokens": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []string{"japanese", "translation"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"japanese":"犬が好きです。","translation":"I like dogs.","level":"N5"}`, false},
		{"without optional", `{"japanese":"犬です。","translation":"It is a dog."}`, false},
		{"missing required", `{"japanese":"犬です。"}`, true},
		{"wrong type", `{"japanese":"犬です。","translation":5}`, true},
		{"bad enum", `{"japanese":"犬です。","translation":"x","level":"N1"}`, true},
		{"empty string violates minLength", `{"japanese":"","translation":"x"}`, true},
		{"bad array item", `{"japanese":"犬","translation":"dog","tokens":[1,2]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(sentenceSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
