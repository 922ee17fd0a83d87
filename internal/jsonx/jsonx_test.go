package jsonx

import (
	"encoding/json"
	"testing"
)

func TestExtractArray(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"noise around", "Here are the trends:\n[{\"a\":1}]\nHope this helps!", `[{"a":1}]`},
		{"greedy span", `x [1] y [2] z`, `[1] y [2]`},
		{"no array", "no structured data here", "[]"},
		{"reversed brackets", "] nothing [", "[]"},
		{"empty input", "", "[]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractArray(tc.in); got != tc.want {
				t.Fatalf("ExtractArray(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUnwrap_EnvelopeKey(t *testing.T) {
	raw := json.RawMessage(`{"InventoryPlan":{"upcomingFestivals":[]}}`)
	got := Unwrap(raw, "InventoryPlan")
	if string(got) != `{"upcomingFestivals":[]}` {
		t.Fatalf("unexpected unwrap result: %s", got)
	}
}

func TestUnwrap_PassThrough(t *testing.T) {
	for _, raw := range []string{
		`{"upcomingFestivals":[]}`,
		`[1,2]`,
		`"plain"`,
	} {
		got := Unwrap(json.RawMessage(raw), "InventoryPlan")
		if string(got) != raw {
			t.Fatalf("Unwrap(%s) = %s, want unchanged", raw, got)
		}
	}
}
