package textutil

import "strings"

// SanitizeTerminalText replaces control characters so file content cannot
// inject escape sequences into the terminal when painted.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if isControlRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isControlRune(r) {
			return '?'
		}
		return r
	}, text)
}

func isControlRune(r rune) bool {
	if r == '\t' {
		return false
	}
	return (r >= 0 && r < 0x20) || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}
