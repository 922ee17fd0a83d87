package prompt

import (
	"strings"
	"testing"
)

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	out, err := Render("Trends for {category} in {city}.", map[string]string{
		"category": "fashion",
		"city":     "Jaipur",
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "Trends for fashion in Jaipur." {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRender_MissingPlaceholderFails(t *testing.T) {
	_, err := Render("Hello {name}, welcome to {place}.", map[string]string{"name": "x"})
	if err == nil || !strings.Contains(err.Error(), "place") {
		t.Fatalf("expected missing-placeholder error for place, got %v", err)
	}
}

func TestRender_LeavesLiteralBraces(t *testing.T) {
	// JSON examples in templates contain bare braces that are not
	// placeholders.
	out, err := Render("[\n  {\n    \"city\": \"{city}\"\n  }\n]", map[string]string{"city": "Pune"})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, `"city": "Pune"`) {
		t.Fatalf("placeholder inside example not substituted: %q", out)
	}
	if !strings.Contains(out, "{\n") {
		t.Fatalf("literal braces were mangled: %q", out)
	}
}

func TestFormatInstructions(t *testing.T) {
	out := FormatInstructions([]Field{
		{Name: "focus", Type: "string", Required: true, Description: "Weekly focus."},
		{Name: "notes", Type: "[]string"},
	})
	for _, want := range []string{
		"Respond ONLY with a valid JSON object",
		"- focus (string, required): Weekly focus.",
		"- notes ([]string, optional)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in instructions:\n%s", want, out)
		}
	}
}
