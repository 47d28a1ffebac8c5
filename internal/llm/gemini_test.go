package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(sentenceSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["japanese"].Type != genai.TypeString {
		t.Fatalf("expected STRING for japanese, got %s", schema.Properties["japanese"].Type)
	}
	if len(schema.Properties["level"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["level"].Enum))
	}
	if schema.Properties["tokens"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING items, got %s", schema.Properties["tokens"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %v", schema.Required)
	}
}

func TestGeminiSchema_DecodedValues(t *testing.T) {
	schema := geminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"a"},
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
		},
	})
	if len(schema.Required) != 1 || schema.Properties["a"].Type != genai.TypeInteger {
		t.Fatalf("unexpected schema: %+v", schema)
	}
}
