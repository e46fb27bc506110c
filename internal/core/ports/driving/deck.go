package driving

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// DeckService manages flashcard decks and their cards.
// Deck display names are unique within a session (trimmed, case-sensitive).
type DeckService interface {
	// List returns the session's decks.
	List(ctx context.Context, sessionPath string) ([]domain.Deck, error)

	// Get returns a deck by name, preferring an exact match.
	Get(ctx context.Context, sessionPath, name string) (*domain.Deck, error)

	// Save persists a deck as given, overwriting the stored copy.
	Save(ctx context.Context, sessionPath string, deck *domain.Deck) error

	// Create adds an empty deck.
	Create(ctx context.Context, sessionPath, name string) (*domain.Deck, error)

	// Rename changes a deck's name.
	Rename(ctx context.Context, sessionPath, oldName, newName string) (*domain.Deck, error)

	// Delete removes a deck and its cards.
	Delete(ctx context.Context, sessionPath, name string) error

	// AddCard appends a new card to a deck.
	AddCard(ctx context.Context, sessionPath, deckName, question, answer string) (*domain.Flashcard, error)

	// UpdateCard replaces a card's question and answer.
	UpdateCard(ctx context.Context, sessionPath, deckName string, cardID int64, question, answer string) (*domain.Flashcard, error)

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, sessionPath, deckName string, cardID int64) error

	// SetCardStatus records a review outcome.
	SetCardStatus(ctx context.Context, sessionPath, deckName string, cardID int64, status domain.CardStatus) (*domain.Flashcard, error)
}
