package driven

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// DeckStore persists decks under a session's flashcards directory.
// Name uniqueness between display names is the caller's concern; the store
// only checks directory collisions.
type DeckStore interface {
	// Save overwrites the deck's data file with the full deck.
	Save(ctx context.Context, sessionPath string, deck *domain.Deck) error

	// List returns the session's decks. Unreadable decks are skipped.
	List(ctx context.Context, sessionPath string) ([]domain.Deck, error)

	// Delete removes the deck directory recursively.
	Delete(ctx context.Context, sessionPath, deckName string) error

	// Rename moves the deck directory and updates its stored name.
	Rename(ctx context.Context, sessionPath, oldName, newName string) error
}
