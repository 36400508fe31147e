package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the default maximum length for descriptions
// in formatted table output.
const DefaultDescriptionMaxLen = 40

// minTruncateLen is the smallest usable maxLen: one character plus "...".
const minTruncateLen = 4

// TruncateDescription truncates a string to maxLen characters and ensures
// single-line output. Newlines and runs of whitespace collapse to single
// spaces, and "..." marks a truncation. Slicing is rune-based so multi-byte
// characters are never cut in half.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
