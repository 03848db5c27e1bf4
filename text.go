package docscrape

import (
	"strings"
	"unicode"
)

// Normalize collapses every whitespace run (newlines and non-breaking
// spaces included) into a single space, drops control and invisible
// format characters, and trims the result.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			// dropped without breaking the surrounding word
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}

	return b.String()
}
