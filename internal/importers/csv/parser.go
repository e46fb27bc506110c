// Package csv parses delimited flashcard files.
//
// The first non-empty line is a header when it names both a question and an
// answer column (English or Italian aliases, case-insensitive). Otherwise
// columns are positional: question, answer, deck, status, and the first line
// is data. Quoted fields may contain the delimiter; a doubled quote inside a
// quoted field is a literal quote. Fields never span lines.
package csv

import (
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.FlashcardParser = (*Parser)(nil)

const bom = "\ufeff"

// candidateDelimiters in tie-break order.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

var headerAliases = map[string]column{
	"question": colQuestion,
	"domanda":  colQuestion,
	"front":    colQuestion,
	"fronte":   colQuestion,
	"q":        colQuestion,
	"answer":   colAnswer,
	"risposta": colAnswer,
	"back":     colAnswer,
	"retro":    colAnswer,
	"a":        colAnswer,
	"deck":     colDeck,
	"mazzo":    colDeck,
	"status":   colStatus,
	"stato":    colStatus,
}

type column int

const (
	colQuestion column = iota
	colAnswer
	colDeck
	colStatus
	numColumns
)

// Parser handles CSV, TSV and similar files.
type Parser struct{}

// New creates a new CSV parser.
func New() *Parser {
	return &Parser{}
}

// Format returns the override key.
func (p *Parser) Format() string {
	return domain.FormatCSV
}

// Extensions returns the handled file extensions.
func (p *Parser) Extensions() []string {
	return []string{".csv", ".tsv"}
}

type line struct {
	number int
	text   string
}

// Parse converts content into drafts. Rows without a question or an answer
// are reported as issues and skipped.
func (p *Parser) Parse(content []byte, opts domain.ParseOptions) (*domain.ParseResult, error) {
	result := &domain.ParseResult{
		Format: domain.FormatCSV,
		Cards:  []domain.FlashcardDraft{},
		Errors: []domain.ParseIssue{},
	}

	lines := splitLines(strings.TrimPrefix(string(content), bom))
	if len(lines) == 0 {
		return result, nil
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(lines[0].text)
	}
	quote := opts.Quote
	if quote == 0 {
		quote = '"'
	}

	idx, hasHeader := detectHeader(SplitFields(lines[0].text, delim, quote))
	if hasHeader {
		lines = lines[1:]
	}

	for _, l := range lines {
		fields := SplitFields(l.text, delim, quote)
		draft := domain.FlashcardDraft{
			Question: field(fields, idx[colQuestion]),
			Answer:   field(fields, idx[colAnswer]),
			Deck:     field(fields, idx[colDeck]),
			Status:   field(fields, idx[colStatus]),
		}
		if draft.Question == "" || draft.Answer == "" {
			result.Errors = append(result.Errors, domain.ParseIssue{
				Line:    l.number,
				Message: "missing question or answer",
			})
			continue
		}
		result.Cards = append(result.Cards, draft)
	}
	return result, nil
}

// splitLines returns the non-blank lines with their 1-based numbers.
func splitLines(text string) []line {
	var out []line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, line{number: i + 1, text: raw})
	}
	return out
}

// DetectDelimiter picks the candidate occurring most often in the line.
// Ties go to the earlier candidate; comma is the default.
func DetectDelimiter(first string) rune {
	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(first, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// detectHeader maps column roles to indices. Without a question and an
// answer header it returns the positional layout.
func detectHeader(header []string) ([numColumns]int, bool) {
	idx := [numColumns]int{-1, -1, -1, -1}
	for i, name := range header {
		role, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if ok && idx[role] < 0 {
			idx[role] = i
		}
	}
	if idx[colQuestion] >= 0 && idx[colAnswer] >= 0 {
		return idx, true
	}
	return [numColumns]int{0, 1, 2, 3}, false
}

// SplitFields tokenizes one line. Fields are trimmed.
func SplitFields(text string, delim, quote rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote && inQuotes && i+1 < len(runes) && runes[i+1] == quote:
			cur.WriteRune(quote)
			i++
		case c == quote:
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}
