package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops control characters other than newline
// and tab, and truncates to maxLen runes (no limit when maxLen <= 0).
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	if maxLen > 0 {
		if runes := []rune(cleaned); len(runes) > maxLen {
			cleaned = string(runes[:maxLen])
		}
	}
	return strings.TrimSpace(cleaned)
}

// SanitizeLine is SanitizeString for single-line values: newlines and tabs
// collapse into single spaces.
func SanitizeLine(input string, maxLen int) string {
	return SanitizeString(strings.Join(strings.Fields(input), " "), maxLen)
}
