// Package jsonx repairs and unwraps model output before strict schema
// decoding: envelope-key unwrapping and best-effort extraction of a
// JSON array from noisy prose.
package jsonx

import (
	"encoding/json"
	"strings"
)

// ExtractArray returns the first greedy [...] span in text. When no
// array is present it returns "[]" — an empty result is valid output,
// not an error, so callers can degrade gracefully.
func ExtractArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "[]"
	}
	return text[start : end+1]
}

// Unwrap returns the member under key when raw is an object containing
// that envelope key, otherwise raw unchanged.
func Unwrap(raw json.RawMessage, key string) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if inner, ok := envelope[key]; ok {
		return inner
	}
	return raw
}
