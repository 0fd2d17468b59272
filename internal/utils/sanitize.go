package utils

import (
	"strings"
	"unicode"
)

// SanitizeField cleans a client-supplied text field before validation:
// angle brackets and control characters are stripped, surrounding
// whitespace is trimmed. Stripping "<" and ">" is defense in depth at the
// input layer; the repository never interprets field content.
func SanitizeField(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == '<' || r == '>' {
			continue
		}
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// NormalizeField sanitizes a field and upper-cases it to the canonical
// stored form.
func NormalizeField(input string) string {
	return strings.ToUpper(SanitizeField(input))
}
