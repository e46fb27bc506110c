package services

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ensure DeckService implements the interface.
var _ driving.DeckService = (*DeckService)(nil)

// DeckService manages flashcard decks. Name uniqueness within a session is
// checked here, before the store sees the deck.
type DeckService struct {
	decks driven.DeckStore
	now   func() time.Time
}

// NewDeckService creates a new deck service.
func NewDeckService(decks driven.DeckStore) *DeckService {
	return &DeckService{decks: decks, now: time.Now}
}

// List returns the session's decks.
func (s *DeckService) List(ctx context.Context, sessionPath string) ([]domain.Deck, error) {
	if s.decks == nil {
		return nil, domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return nil, domain.ErrNoSession
	}
	return s.decks.List(ctx, sessionPath)
}

// Get returns a deck by exact trimmed name, falling back to a
// case-insensitive match.
func (s *DeckService) Get(ctx context.Context, sessionPath, name string) (*domain.Deck, error) {
	decks, err := s.List(ctx, sessionPath)
	if err != nil {
		return nil, err
	}
	target := strings.TrimSpace(name)
	for i := range decks {
		if strings.TrimSpace(decks[i].Name) == target {
			return &decks[i], nil
		}
	}
	if i := domain.FindDeckFold(decks, target); i >= 0 {
		return &decks[i], nil
	}
	return nil, domain.ErrDeckNotFound
}

// Save persists a deck as given, overwriting the stored copy.
func (s *DeckService) Save(ctx context.Context, sessionPath string, deck *domain.Deck) error {
	if s.decks == nil {
		return domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return domain.ErrNoSession
	}
	if deck == nil {
		return domain.ErrInvalidInput
	}
	if domain.SanitizeName(deck.Name) == "" {
		return domain.ErrInvalidName
	}
	s.inheritIdentity(ctx, sessionPath, deck)
	return s.decks.Save(ctx, sessionPath, deck)
}

// inheritIdentity copies unset identity fields from the stored deck that
// shares deck's directory.
func (s *DeckService) inheritIdentity(ctx context.Context, sessionPath string, deck *domain.Deck) {
	if deck.ID != 0 && deck.UUID != "" && !deck.CreatedAt.IsZero() {
		return
	}
	decks, err := s.decks.List(ctx, sessionPath)
	if err != nil {
		return
	}
	for i := range decks {
		if !strings.EqualFold(decks[i].DirName(), deck.DirName()) {
			continue
		}
		if deck.ID == 0 {
			deck.ID = decks[i].ID
		}
		if deck.UUID == "" {
			deck.UUID = decks[i].UUID
		}
		if deck.CreatedAt.IsZero() {
			deck.CreatedAt = decks[i].CreatedAt
		}
		return
	}
}

// Create adds an empty deck. A name already used by another deck fails with
// ErrDuplicateName; one whose directory is taken fails with ErrDeckNameExists.
func (s *DeckService) Create(ctx context.Context, sessionPath, name string) (*domain.Deck, error) {
	name = strings.TrimSpace(name)
	dir := domain.SanitizeName(name)
	if dir == "" {
		return nil, domain.ErrInvalidName
	}

	decks, err := s.List(ctx, sessionPath)
	if err != nil {
		return nil, err
	}
	if domain.HasDeckNamed(decks, name, "") {
		return nil, domain.ErrDuplicateName
	}
	for i := range decks {
		if strings.EqualFold(decks[i].DirName(), dir) {
			return nil, domain.ErrDeckNameExists
		}
	}

	deck := &domain.Deck{Name: name, Cards: []domain.Flashcard{}}
	if err := s.decks.Save(ctx, sessionPath, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// Rename changes a deck's name and returns the renamed deck.
func (s *DeckService) Rename(ctx context.Context, sessionPath, oldName, newName string) (*domain.Deck, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if domain.SanitizeName(newName) == "" {
		return nil, domain.ErrInvalidName
	}

	current, err := s.Get(ctx, sessionPath, oldName)
	if err != nil {
		return nil, err
	}
	decks, err := s.decks.List(ctx, sessionPath)
	if err != nil {
		return nil, err
	}
	if domain.HasDeckNamed(decks, newName, current.Name) {
		return nil, domain.ErrDuplicateName
	}

	if err := s.decks.Rename(ctx, sessionPath, current.Name, newName); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionPath, newName)
}

// Delete removes a deck and its cards.
func (s *DeckService) Delete(ctx context.Context, sessionPath, name string) error {
	if s.decks == nil {
		return domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return domain.ErrNoSession
	}
	return s.decks.Delete(ctx, sessionPath, strings.TrimSpace(name))
}

// AddCard appends a new card to a deck and rewrites the deck.
func (s *DeckService) AddCard(ctx context.Context, sessionPath, deckName, question, answer string) (*domain.Flashcard, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, domain.ErrInvalidInput
	}

	deck, err := s.Get(ctx, sessionPath, deckName)
	if err != nil {
		return nil, err
	}
	now := s.now()
	deck.Cards = append(deck.Cards, domain.Flashcard{
		ID:        nextCardID(deck, now),
		Question:  question,
		Answer:    answer,
		Status:    domain.StatusNew,
		CreatedAt: now,
	})
	if err := s.decks.Save(ctx, sessionPath, deck); err != nil {
		return nil, err
	}
	card := deck.Cards[len(deck.Cards)-1]
	return &card, nil
}

// UpdateCard replaces a card's question and answer.
func (s *DeckService) UpdateCard(
	ctx context.Context, sessionPath, deckName string, cardID int64, question, answer string,
) (*domain.Flashcard, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.mutateCard(ctx, sessionPath, deckName, cardID, func(c *domain.Flashcard) {
		c.Question = question
		c.Answer = answer
	})
}

// DeleteCard removes a card.
func (s *DeckService) DeleteCard(ctx context.Context, sessionPath, deckName string, cardID int64) error {
	deck, err := s.Get(ctx, sessionPath, deckName)
	if err != nil {
		return err
	}
	i := deck.CardIndex(cardID)
	if i < 0 {
		return domain.ErrCardNotFound
	}
	deck.Cards = append(deck.Cards[:i], deck.Cards[i+1:]...)
	return s.decks.Save(ctx, sessionPath, deck)
}

// SetCardStatus records a review outcome and stamps LastReviewed.
func (s *DeckService) SetCardStatus(
	ctx context.Context, sessionPath, deckName string, cardID int64, status domain.CardStatus,
) (*domain.Flashcard, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	return s.mutateCard(ctx, sessionPath, deckName, cardID, func(c *domain.Flashcard) {
		reviewed := s.now()
		c.Status = status
		c.LastReviewed = &reviewed
	})
}

func (s *DeckService) mutateCard(
	ctx context.Context, sessionPath, deckName string, cardID int64, fn func(*domain.Flashcard),
) (*domain.Flashcard, error) {
	deck, err := s.Get(ctx, sessionPath, deckName)
	if err != nil {
		return nil, err
	}
	i := deck.CardIndex(cardID)
	if i < 0 {
		return nil, domain.ErrCardNotFound
	}
	fn(&deck.Cards[i])
	if err := s.decks.Save(ctx, sessionPath, deck); err != nil {
		return nil, err
	}
	card := deck.Cards[i]
	return &card, nil
}

// nextCardID returns a millisecond timestamp id that is greater than every
// id already in the deck.
func nextCardID(deck *domain.Deck, now time.Time) int64 {
	id := now.UnixMilli()
	for i := range deck.Cards {
		if deck.Cards[i].ID >= id {
			id = deck.Cards[i].ID + 1
		}
	}
	return id
}
