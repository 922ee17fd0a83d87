// Package prompt renders completion prompts from templates with
// {placeholder} substitution and appends output-format instruction
// blocks that steer the model toward a target schema.
package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Render substitutes every {name} placeholder in tmpl with vars[name].
// A placeholder without a supplied value is a configuration error.
func Render(tmpl string, vars map[string]string) (string, error) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt: missing value for placeholder %q", missing[0])
	}
	return out, nil
}

// Field describes one output field in a response schema.
type Field struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// FormatInstructions renders the output-format block appended to every
// generation prompt so the model emits the expected field names and
// types.
func FormatInstructions(fields []Field) string {
	var buf strings.Builder
	buf.WriteString("Respond ONLY with a valid JSON object. Do not include any text before or after the JSON.\n")
	buf.WriteString("The JSON object must contain these fields:\n")
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}
