package mcp

import (
	"encoding/json"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// Tool payloads use plain JSON types only: timestamps travel as RFC 3339
// strings and note documents as decoded JSON values.

// SessionOutput is a session as returned by tools.
type SessionOutput struct {
	ID           int64        `json:"id"`
	UUID         string       `json:"uuid,omitempty"`
	Name         string       `json:"name"`
	Files        []string     `json:"files"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	LastModified string       `json:"lastModified,omitempty"`
	FullPath     string       `json:"fullPath"`
	Decks        []DeckOutput `json:"decks,omitempty"`
}

// DeckOutput is a deck as returned by tools.
type DeckOutput struct {
	ID           int64        `json:"id"`
	UUID         string       `json:"uuid,omitempty"`
	Name         string       `json:"name"`
	Cards        []CardOutput `json:"cards"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	LastModified string       `json:"lastModified,omitempty"`
}

// CardOutput is a flashcard. It doubles as tool input for save_deck.
type CardOutput struct {
	ID           int64  `json:"id,omitempty" jsonschema:"card id; zero assigns one"`
	Question     string `json:"question" jsonschema:"the question side"`
	Answer       string `json:"answer" jsonschema:"the answer side"`
	Status       string `json:"status,omitempty" jsonschema:"new, review or consolidated"`
	CreatedAt    string `json:"createdAt,omitempty" jsonschema:"RFC 3339 creation time"`
	LastReviewed string `json:"lastReviewed,omitempty" jsonschema:"RFC 3339 time of the last review"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC 3339 values; anything else is treated as unset.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toSessionOutput(s *domain.Session) SessionOutput {
	files := s.Files
	if files == nil {
		files = []string{}
	}
	out := SessionOutput{
		ID:           s.ID,
		UUID:         s.UUID,
		Name:         s.Name,
		Files:        files,
		CreatedAt:    formatTime(s.CreatedAt),
		LastModified: formatTime(s.LastModified),
		FullPath:     s.FullPath,
	}
	if len(s.Decks) > 0 {
		out.Decks = toDeckOutputs(s.Decks)
	}
	return out
}

func toDeckOutputs(decks []domain.Deck) []DeckOutput {
	out := make([]DeckOutput, len(decks))
	for i := range decks {
		out[i] = toDeckOutput(&decks[i])
	}
	return out
}

func toDeckOutput(d *domain.Deck) DeckOutput {
	cards := make([]CardOutput, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = CardOutput{
			ID:        c.ID,
			Question:  c.Question,
			Answer:    c.Answer,
			Status:    c.Status.String(),
			CreatedAt: formatTime(c.CreatedAt),
		}
		if c.LastReviewed != nil {
			cards[i].LastReviewed = formatTime(*c.LastReviewed)
		}
	}
	return DeckOutput{
		ID:           d.ID,
		UUID:         d.UUID,
		Name:         d.Name,
		Cards:        cards,
		CreatedAt:    formatTime(d.CreatedAt),
		LastModified: formatTime(d.LastModified),
	}
}

// toFlashcards converts tool input cards. Missing ids are numbered after the
// highest id given so that every card in the deck stays addressable.
func toFlashcards(in []CardOutput) []domain.Flashcard {
	var maxID int64
	for _, c := range in {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	cards := make([]domain.Flashcard, len(in))
	for i, c := range in {
		id := c.ID
		if id == 0 {
			maxID++
			id = maxID
		}
		cards[i] = domain.Flashcard{
			ID:        id,
			Question:  c.Question,
			Answer:    c.Answer,
			Status:    domain.NormalizeStatus(c.Status),
			CreatedAt: parseTime(c.CreatedAt),
		}
		if t := parseTime(c.LastReviewed); !t.IsZero() {
			cards[i].LastReviewed = &t
		}
	}
	return cards
}

// decodeDocument turns a stored note document into a JSON value.
// Undecodable documents are returned as their raw text.
func decodeDocument(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
