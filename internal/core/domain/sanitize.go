package domain

import (
	"strings"
	"unicode"
)

// accentedRunes are the non-ASCII letters kept in sanitized names.
const accentedRunes = "àèéìòùç"

// SanitizeName strips every character outside letters, digits, whitespace,
// hyphen, underscore and the accented Italian vowels plus ç, then trims.
// The result is used as a directory name for sessions and decks.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isAllowedNameRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isAllowedNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_':
		return true
	case unicode.IsSpace(r):
		return true
	default:
		return strings.ContainsRune(accentedRunes, r)
	}
}
