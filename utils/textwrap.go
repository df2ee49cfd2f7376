package utils

import "strings"

// HardWrap splits text into runs of at most max runes joined by single
// spaces, so a line renderer always finds a break point. Text that already
// fits is returned unchanged.
func HardWrap(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	parts := make([]string, 0, len(runes)/max+1)
	for i := 0; i < len(runes); i += max {
		end := i + max
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[i:end]))
	}
	return strings.Join(parts, " ")
}
