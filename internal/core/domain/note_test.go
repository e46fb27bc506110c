package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteFromPlainText(t *testing.T) {
	doc := NoteFromPlainText("first line\n")

	require.Len(t, doc.Content, 2)
	assert.Equal(t, "doc", doc.Type)
	assert.Equal(t, "paragraph", doc.Content[0].Type)
	require.Len(t, doc.Content[0].Content, 1)
	assert.Equal(t, "first line", doc.Content[0].Content[0].Text)
	assert.Equal(t, "paragraph", doc.Content[1].Type)
	assert.Empty(t, doc.Content[1].Content)
}

func TestNoteFromPlainText_CRLF(t *testing.T) {
	doc := NoteFromPlainText("a\r\nb")

	require.Len(t, doc.Content, 2)
	assert.Equal(t, "a", doc.Content[0].Content[0].Text)
	assert.Equal(t, "b", doc.Content[1].Content[0].Text)
}

func TestNoteFromPlainText_EmptyParagraphHasNoContentKey(t *testing.T) {
	data, err := json.Marshal(NoteFromPlainText("\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","content":[{"type":"paragraph"},{"type":"paragraph"}]}`, string(data))
}

func TestEmptyNoteDocument(t *testing.T) {
	a := EmptyNoteDocument()
	a[0] = 'x'
	assert.JSONEq(t, `{"type":"doc","content":[]}`, string(EmptyNoteDocument()))
}

func TestParseNoteDocument_Invalid(t *testing.T) {
	_, err := ParseNoteDocument(json.RawMessage(`{"type":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestNoteNode_Markdown(t *testing.T) {
	raw := `{"type":"doc","content":[
		{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Cells"}]},
		{"type":"paragraph","content":[
			{"type":"text","text":"The "},
			{"type":"text","text":"nucleus","marks":[{"type":"bold"}]},
			{"type":"text","text":" holds DNA."}
		]},
		{"type":"bulletList","content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]}]},
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"two"}]}]}
		]},
		{"type":"orderedList","content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"first"}]}]}
		]},
		{"type":"paragraph","content":[{"type":"text","text":"docs","marks":[{"type":"link","attrs":{"href":"https://example.org"}}]}]}
	]}`

	doc, err := ParseNoteDocument(json.RawMessage(raw))
	require.NoError(t, err)

	want := "## Cells\n\n" +
		"The **nucleus** holds DNA.\n\n" +
		"- one\n- two\n\n" +
		"1. first\n\n" +
		"[docs](https://example.org)\n"
	assert.Equal(t, want, doc.Markdown())
}

func TestNoteNode_MarkdownCodeAndQuote(t *testing.T) {
	doc := NoteNode{Type: "doc", Content: []NoteNode{
		{Type: "blockquote", Content: []NoteNode{
			{Type: "paragraph", Content: []NoteNode{{Type: "text", Text: "quoted"}}},
		}},
		{Type: "codeBlock", Attrs: map[string]any{"language": "go"}, Content: []NoteNode{
			{Type: "text", Text: "x := 1"},
		}},
		{Type: "horizontalRule"},
	}}

	assert.Equal(t, "> quoted\n\n```go\nx := 1\n```\n\n---\n", doc.Markdown())
}

func TestNoteNode_MarkdownOutOfRangeAttrs(t *testing.T) {
	doc, err := ParseNoteDocument([]byte(`{"type":"doc","content":[
		{"type":"heading","attrs":{"level":1e300},"content":[{"type":"text","text":"Huge"}]},
		{"type":"heading","attrs":{"level":-3},"content":[{"type":"text","text":"Negative"}]},
		{"type":"orderedList","attrs":{"start":1e300},"content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"x"}]}]}
		]}
	]}`))
	require.NoError(t, err)

	var md string
	require.NotPanics(t, func() { md = doc.Markdown() })
	assert.Contains(t, md, "###### Huge\n")
	assert.Contains(t, md, "###### Huge\n\n# Negative\n")
	assert.Contains(t, md, "1000000000. x\n")
}
