package validators

import "strings"

// SanitizeString trims surrounding whitespace and bounds the value to maxLen
// runes. maxLen <= 0 disables the bound.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
