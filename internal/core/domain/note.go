package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Note file names inside a session directory.
const (
	NoteFileName       = "appunti.json"
	LegacyNoteFileName = "appunti.txt"
	LegacyBackupSuffix = ".backup"
)

// emptyNoteDocument is returned when a session has no notes yet.
var emptyNoteDocument = json.RawMessage(`{"type":"doc","content":[]}`)

// EmptyNoteDocument returns a fresh copy of the minimal document.
func EmptyNoteDocument() json.RawMessage {
	out := make(json.RawMessage, len(emptyNoteDocument))
	copy(out, emptyNoteDocument)
	return out
}

// NoteNode is one node of a rich-text document tree. The root node has
// Type "doc"; block nodes carry Content, text nodes carry Text and Marks.
type NoteNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []NoteNode     `json:"content,omitempty"`
	Marks   []NoteMark     `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// NoteMark is an inline formatting mark on a text node.
type NoteMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NoteLoad is the outcome of loading a session's notes.
type NoteLoad struct {
	// Document is the stored rich-text document.
	Document json.RawMessage

	// Migrated is true when the document was converted from the legacy format.
	Migrated bool
}

// NoteFromPlainText converts legacy plain-text notes into a document:
// one paragraph per line, empty lines becoming empty paragraphs.
func NoteFromPlainText(text string) NoteNode {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	doc := NoteNode{Type: "doc", Content: make([]NoteNode, 0, len(lines))}
	for _, line := range lines {
		p := NoteNode{Type: "paragraph"}
		if line != "" {
			p.Content = []NoteNode{{Type: "text", Text: line}}
		}
		doc.Content = append(doc.Content, p)
	}
	return doc
}

// ParseNoteDocument decodes a stored document.
func ParseNoteDocument(raw json.RawMessage) (NoteNode, error) {
	var n NoteNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return NoteNode{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return n, nil
}

// Markdown renders the document tree as Markdown.
// Unknown node types render their children.
func (n NoteNode) Markdown() string {
	var b strings.Builder
	renderBlocks(&b, n.Content, "")
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderBlocks(b *strings.Builder, nodes []NoteNode, indent string) {
	for i, n := range nodes {
		switch n.Type {
		case "paragraph":
			b.WriteString(indent + renderInline(n.Content) + "\n\n")
		case "heading":
			level := intAttr(n.Attrs, "level", 1, maxHeadingLevel)
			b.WriteString(indent + strings.Repeat("#", level) + " " + renderInline(n.Content) + "\n\n")
		case "bulletList":
			renderList(b, n.Content, indent, func(int) string { return "- " })
			b.WriteString("\n")
		case "orderedList":
			start := intAttr(n.Attrs, "start", 1, maxListStart)
			renderList(b, n.Content, indent, func(j int) string { return fmt.Sprintf("%d. ", start+j) })
			b.WriteString("\n")
		case "taskList":
			renderList(b, n.Content, indent, func(j int) string {
				if checked, _ := n.Content[j].Attrs["checked"].(bool); checked {
					return "- [x] "
				}
				return "- [ ] "
			})
			b.WriteString("\n")
		case "blockquote":
			var inner strings.Builder
			renderBlocks(&inner, n.Content, "")
			for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
				b.WriteString(indent + strings.TrimRight("> "+line, " ") + "\n")
			}
			b.WriteString("\n")
		case "codeBlock":
			lang, _ := n.Attrs["language"].(string)
			b.WriteString(indent + "```" + lang + "\n")
			for _, c := range n.Content {
				for _, line := range strings.Split(c.Text, "\n") {
					b.WriteString(indent + line + "\n")
				}
			}
			b.WriteString(indent + "```\n\n")
		case "horizontalRule":
			b.WriteString(indent + "---\n\n")
		case "text", "hardBreak":
			b.WriteString(indent + renderInline(nodes[i:i+1]) + "\n\n")
		default:
			renderBlocks(b, n.Content, indent)
		}
	}
}

func renderList(b *strings.Builder, items []NoteNode, indent string, marker func(int) string) {
	for j, item := range items {
		var inner strings.Builder
		renderBlocks(&inner, item.Content, "")
		lines := strings.Split(strings.TrimRight(inner.String(), "\n"), "\n")
		prefix := marker(j)
		pad := strings.Repeat(" ", len(prefix))
		first := true
		for _, line := range lines {
			if line == "" {
				continue
			}
			if first {
				b.WriteString(indent + prefix + line + "\n")
				first = false
				continue
			}
			b.WriteString(indent + pad + line + "\n")
		}
		if first {
			b.WriteString(indent + strings.TrimRight(prefix, " ") + "\n")
		}
	}
}

func renderInline(nodes []NoteNode) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case "text":
			b.WriteString(applyMarks(n.Text, n.Marks))
		case "hardBreak":
			b.WriteString("  \n")
		default:
			b.WriteString(renderInline(n.Content))
		}
	}
	return b.String()
}

func applyMarks(text string, marks []NoteMark) string {
	for _, m := range marks {
		switch m.Type {
		case "bold":
			text = "**" + text + "**"
		case "italic":
			text = "_" + text + "_"
		case "strike":
			text = "~~" + text + "~~"
		case "code":
			text = "`" + text + "`"
		case "link":
			if href, ok := m.Attrs["href"].(string); ok && href != "" {
				text = "[" + text + "](" + href + ")"
			}
		}
	}
	return text
}

const (
	maxHeadingLevel = 6
	maxListStart    = 1_000_000_000
)

// intAttr reads a numeric attribute clamped to [1, limit]; JSON numbers
// decode as float64. Missing or non-positive values yield def.
func intAttr(attrs map[string]any, key string, def, limit int) int {
	switch v := attrs[key].(type) {
	case float64:
		if v >= float64(limit) {
			return limit
		}
		if v >= 1 {
			return int(v)
		}
	case int:
		if v >= limit {
			return limit
		}
		if v >= 1 {
			return v
		}
	}
	return def
}
