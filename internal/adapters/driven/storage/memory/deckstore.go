package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

// DeckStore is an in-memory implementation of driven.DeckStore.
// Decks are keyed by session path and lower-cased sanitized name,
// mirroring a case-insensitive directory lookup.
type DeckStore struct {
	mu    sync.RWMutex
	decks map[string]map[string]domain.Deck
}

// NewDeckStore creates a new in-memory deck store.
func NewDeckStore() *DeckStore {
	return &DeckStore{
		decks: make(map[string]map[string]domain.Deck),
	}
}

func deckKey(name string) string {
	return strings.ToLower(domain.SanitizeName(name))
}

// Save stores a copy of the deck, filling in identity fields.
func (s *DeckStore) Save(_ context.Context, sessionPath string, deck *domain.Deck) error {
	if deck == nil {
		return domain.ErrInvalidInput
	}
	key := deckKey(deck.Name)
	if key == "" {
		return domain.ErrInvalidName
	}

	now := time.Now()
	if deck.ID == 0 {
		deck.ID = now.UnixMilli()
	}
	if deck.UUID == "" {
		deck.UUID = uuid.NewString()
	}
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = now
	}
	deck.LastModified = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decks[sessionPath] == nil {
		s.decks[sessionPath] = make(map[string]domain.Deck)
	}
	s.decks[sessionPath][key] = cloneDeck(deck)
	return nil
}

// List returns copies of the session's decks ordered by name.
func (s *DeckStore) List(_ context.Context, sessionPath string) ([]domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.decks[sessionPath]))
	for k := range s.decks[sessionPath] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]domain.Deck, 0, len(keys))
	for _, k := range keys {
		d := s.decks[sessionPath][k]
		result = append(result, cloneDeck(&d))
	}
	return result, nil
}

// Delete removes a deck.
func (s *DeckStore) Delete(_ context.Context, sessionPath, deckName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := deckKey(deckName)
	if _, ok := s.decks[sessionPath][key]; !ok {
		return domain.ErrDeckNotFound
	}
	delete(s.decks[sessionPath], key)
	return nil
}

// Rename moves a deck to a new name.
func (s *DeckStore) Rename(_ context.Context, sessionPath, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldKey := deckKey(oldName)
	deck, ok := s.decks[sessionPath][oldKey]
	if !ok {
		return domain.ErrDeckNotFound
	}
	newKey := deckKey(newName)
	if newKey == "" {
		return domain.ErrInvalidName
	}
	if _, taken := s.decks[sessionPath][newKey]; taken && newKey != oldKey {
		return domain.ErrDeckNameExists
	}

	delete(s.decks[sessionPath], oldKey)
	deck.Name = newName
	deck.LastModified = time.Now()
	s.decks[sessionPath][newKey] = deck
	return nil
}

func cloneDeck(d *domain.Deck) domain.Deck {
	out := *d
	out.Cards = append([]domain.Flashcard(nil), d.Cards...)
	return out
}
