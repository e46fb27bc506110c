package domain

import (
	"strings"
	"time"
)

// FlashcardsDir is the session subdirectory holding one folder per deck.
const FlashcardsDir = "flashcards"

// DeckDataFile is the file inside each deck folder.
const DeckDataFile = "data.json"

// CardStatus is the study progress of a flashcard.
type CardStatus string

// Card statuses.
const (
	StatusNew          CardStatus = "new"
	StatusReview       CardStatus = "review"
	StatusConsolidated CardStatus = "consolidated"
)

// IsValid returns true if the status is one of the three known values.
func (s CardStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusReview, StatusConsolidated:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s CardStatus) String() string {
	return string(s)
}

// statusAliases maps free-form import values onto the enum.
var statusAliases = map[string]CardStatus{
	"todo":         StatusNew,
	"pending":      StatusNew,
	"done":         StatusConsolidated,
	"ok":           StatusConsolidated,
	"consolidato":  StatusConsolidated,
	"completed":    StatusConsolidated,
	"new":          StatusNew,
	"review":       StatusReview,
	"consolidated": StatusConsolidated,
}

// NormalizeStatus maps a free-form status string (case-insensitive) to a
// CardStatus. Unknown values default to StatusNew.
func NormalizeStatus(raw string) CardStatus {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusNew
}

// Flashcard is a question/answer pair owned by exactly one deck.
type Flashcard struct {
	ID           int64
	Question     string
	Answer       string
	Status       CardStatus
	CreatedAt    time.Time
	LastReviewed *time.Time
}

// Deck is a named collection of flashcards within a session.
type Deck struct {
	// ID is the creation timestamp in milliseconds.
	ID int64

	// UUID is the stable opaque identifier assigned at creation.
	UUID string

	// Name is the display name. Its sanitized form is the directory name.
	Name string

	// Cards are kept in insertion order.
	Cards []Flashcard

	CreatedAt    time.Time
	LastModified time.Time
}

// DirName returns the directory name derived from the display name.
func (d *Deck) DirName() string {
	return SanitizeName(d.Name)
}

// CardIndex returns the position of the card with the given id, or -1.
func (d *Deck) CardIndex(id int64) int {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// StatusCounts tallies the deck's cards by status.
func (d *Deck) StatusCounts() map[CardStatus]int {
	counts := map[CardStatus]int{
		StatusNew:          0,
		StatusReview:       0,
		StatusConsolidated: 0,
	}
	for i := range d.Cards {
		counts[d.Cards[i].Status]++
	}
	return counts
}

// HasDeckNamed reports whether any deck's trimmed name equals the trimmed
// name exactly. except is skipped so a deck can keep its own name.
func HasDeckNamed(decks []Deck, name string, except string) bool {
	target := strings.TrimSpace(name)
	skip := strings.TrimSpace(except)
	for i := range decks {
		n := strings.TrimSpace(decks[i].Name)
		if skip != "" && n == skip {
			continue
		}
		if n == target {
			return true
		}
	}
	return false
}

// FindDeckFold returns the index of the first deck whose trimmed name matches
// case-insensitively, or -1.
func FindDeckFold(decks []Deck, name string) int {
	target := strings.TrimSpace(name)
	for i := range decks {
		if strings.EqualFold(strings.TrimSpace(decks[i].Name), target) {
			return i
		}
	}
	return -1
}
