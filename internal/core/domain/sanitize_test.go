package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Biology", "Biology"},
		{"spaces kept", "Organic Chemistry 2", "Organic Chemistry 2"},
		{"punctuation stripped", "Math: Limits!", "Math Limits"},
		{"path separators stripped", "../etc/passwd", "etcpasswd"},
		{"accents kept", "Perché così", "Perché così"},
		{"cedilla kept", "Français", "Français"},
		{"hyphen and underscore", "exam_prep-2024", "exam_prep-2024"},
		{"trimmed", "  Storia  ", "Storia"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
		{"uppercase accent stripped", "È vero", "vero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestSanitizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"Biology",
		"  Math: Limits!  ",
		"Perché così?",
		"a/b\\c",
		"\ttabbed name\n",
		"exam_prep-2024 (final)",
		"",
	}

	for _, in := range inputs {
		once := SanitizeName(in)
		assert.Equal(t, once, SanitizeName(once), "input %q", in)
	}
}
