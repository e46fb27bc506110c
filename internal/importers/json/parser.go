// Package json parses flashcard files in one of three JSON shapes:
//
//	[{"question": "...", "answer": "..."}]
//	{"deck": "Bio", "cards": [...]}
//	{"decks": [{"name": "Bio", "cards": [...]}]}
//
// In the second shape the top-level deck name is the fallback for cards
// that do not name one.
package json

import (
	encjson "encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.FlashcardParser = (*Parser)(nil)

var (
	questionKeys = []string{"question", "domanda", "front", "fronte", "q"}
	answerKeys   = []string{"answer", "risposta", "back", "retro", "a"}
	deckKeys     = []string{"deck", "deckName", "mazzo"}
	statusKeys   = []string{"status", "stato"}

	// containerNameKeys name a deck object or a cards container.
	containerNameKeys = []string{"deck", "deckName", "name", "title", "nome"}
)

// Parser handles JSON flashcard files.
type Parser struct{}

// New creates a new JSON parser.
func New() *Parser {
	return &Parser{}
}

// Format returns the override key.
func (p *Parser) Format() string {
	return domain.FormatJSON
}

// Extensions returns the handled file extensions.
func (p *Parser) Extensions() []string {
	return []string{".json"}
}

// Parse converts content into drafts. Invalid JSON returns
// domain.ErrInvalidJSON; an unknown top-level shape is reported as a single
// issue with line 0.
func (p *Parser) Parse(content []byte, _ domain.ParseOptions) (*domain.ParseResult, error) {
	var root any
	if err := encjson.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}

	c := &collector{result: &domain.ParseResult{
		Format: domain.FormatJSON,
		Cards:  []domain.FlashcardDraft{},
		Errors: []domain.ParseIssue{},
	}}

	switch v := root.(type) {
	case []any:
		c.cards(v, "")
	case map[string]any:
		if cards, ok := v["cards"].([]any); ok {
			c.cards(cards, lookup(v, containerNameKeys))
		} else if decks, ok := v["decks"].([]any); ok {
			c.decks(decks)
		} else {
			c.structural()
		}
	default:
		c.structural()
	}
	return c.result, nil
}

type collector struct {
	result *domain.ParseResult
	item   int
}

func (c *collector) issue(message string) {
	c.result.Errors = append(c.result.Errors, domain.ParseIssue{Line: c.item, Message: message})
}

func (c *collector) structural() {
	c.result.Errors = append(c.result.Errors, domain.ParseIssue{
		Message: `unrecognised structure: expected an array of cards or an object with "cards" or "decks"`,
	})
}

func (c *collector) decks(decks []any) {
	for i, raw := range decks {
		deck, ok := raw.(map[string]any)
		if !ok {
			c.result.Errors = append(c.result.Errors, domain.ParseIssue{
				Message: fmt.Sprintf("deck %d is not an object", i+1),
			})
			continue
		}
		cards, ok := deck["cards"].([]any)
		if !ok {
			cards, _ = deck["flashcards"].([]any)
		}
		c.cards(cards, lookup(deck, containerNameKeys))
	}
}

func (c *collector) cards(items []any, fallbackDeck string) {
	for _, raw := range items {
		c.item++
		obj, ok := raw.(map[string]any)
		if !ok {
			c.issue("item is not an object")
			continue
		}
		draft := domain.FlashcardDraft{
			Question: lookup(obj, questionKeys),
			Answer:   lookup(obj, answerKeys),
			Deck:     lookup(obj, deckKeys),
			Status:   lookup(obj, statusKeys),
		}
		if draft.Question == "" || draft.Answer == "" {
			c.issue("missing question or answer")
			continue
		}
		if draft.Deck == "" {
			draft.Deck = fallbackDeck
		}
		c.result.Cards = append(c.result.Cards, draft)
	}
}

// lookup returns the first non-empty value among keys. An exact key wins
// over a case-insensitive match; among several case variants the smallest
// key in byte order is used.
func lookup(obj map[string]any, keys []string) string {
	var folded []string
	for _, key := range keys {
		if s := scalar(obj[key]); s != "" {
			return s
		}
		folded = folded[:0]
		for k := range obj {
			if k != key && strings.EqualFold(k, key) {
				folded = append(folded, k)
			}
		}
		sort.Strings(folded)
		for _, k := range folded {
			if s := scalar(obj[k]); s != "" {
				return s
			}
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
