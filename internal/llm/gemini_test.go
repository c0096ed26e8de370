package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(tipSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("len(Properties) = %d, want 4", len(s.Properties))
	}
	if s.Properties["example"].Type != genai.TypeString {
		t.Errorf("example type = %s, want STRING", s.Properties["example"].Type)
	}
	if got := s.Properties["level"].Enum; len(got) != 3 || got[0] != "A1" {
		t.Errorf("level enum = %v", got)
	}
	if len(s.Required) != 2 {
		t.Errorf("Required = %v, want 2 entries", s.Required)
	}
}

func TestGeminiSchema_StringSlicesAndItems(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "integer", "description": "word id"},
		"required": []string{"ignored-but-kept"},
	})
	if s.Type != genai.TypeArray {
		t.Fatalf("Type = %s, want ARRAY", s.Type)
	}
	if s.Items == nil || s.Items.Type != genai.TypeInteger || s.Items.Description != "word id" {
		t.Errorf("Items = %+v", s.Items)
	}
	if len(s.Required) != 1 {
		t.Errorf("Required = %v", s.Required)
	}
	if geminiSchema(map[string]any{"type": "date"}).Type != genai.TypeString {
		t.Error("unknown type should fall back to STRING")
	}
}
