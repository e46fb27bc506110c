package tui

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

var _ driving.DeckService = (*mockDeckService)(nil)

// mockDeckService implements driving.DeckService for testing.
type mockDeckService struct {
	ListFunc          func(ctx context.Context, sessionPath string) ([]domain.Deck, error)
	SetCardStatusFunc func(ctx context.Context, sessionPath, deckName string, cardID int64, status domain.CardStatus) (*domain.Flashcard, error)
}

func (m *mockDeckService) List(ctx context.Context, sessionPath string) ([]domain.Deck, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, sessionPath)
	}
	return nil, nil
}

func (m *mockDeckService) Get(_ context.Context, _, _ string) (*domain.Deck, error) {
	return nil, domain.ErrDeckNotFound
}

func (m *mockDeckService) Save(_ context.Context, _ string, _ *domain.Deck) error {
	return nil
}

func (m *mockDeckService) Create(_ context.Context, _, name string) (*domain.Deck, error) {
	return &domain.Deck{Name: name}, nil
}

func (m *mockDeckService) Rename(_ context.Context, _, _, newName string) (*domain.Deck, error) {
	return &domain.Deck{Name: newName}, nil
}

func (m *mockDeckService) Delete(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockDeckService) AddCard(_ context.Context, _, _, question, answer string) (*domain.Flashcard, error) {
	return &domain.Flashcard{Question: question, Answer: answer, Status: domain.StatusNew}, nil
}

func (m *mockDeckService) UpdateCard(_ context.Context, _, _ string, cardID int64, question, answer string) (*domain.Flashcard, error) {
	return &domain.Flashcard{ID: cardID, Question: question, Answer: answer}, nil
}

func (m *mockDeckService) DeleteCard(_ context.Context, _, _ string, _ int64) error {
	return nil
}

func (m *mockDeckService) SetCardStatus(ctx context.Context, sessionPath, deckName string, cardID int64, status domain.CardStatus) (*domain.Flashcard, error) {
	if m.SetCardStatusFunc != nil {
		return m.SetCardStatusFunc(ctx, sessionPath, deckName, cardID, status)
	}
	return &domain.Flashcard{ID: cardID, Status: status}, nil
}
