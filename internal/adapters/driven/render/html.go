// Package render converts Markdown note exports to HTML.
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// Ensure HTML implements the interface.
var _ driven.NoteRenderer = (*HTML)(nil)

// HTML renders GitHub-flavoured Markdown, which covers the task lists and
// strikethrough that note documents produce.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates a renderer.
func NewHTML() *HTML {
	return &HTML{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// RenderHTML converts markdown to an HTML fragment.
func (h *HTML) RenderHTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.md.Convert(markdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
