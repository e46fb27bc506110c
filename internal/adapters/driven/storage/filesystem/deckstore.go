package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

// DeckStore keeps each deck in <session>/flashcards/<deck>/data.json.
type DeckStore struct{}

// NewDeckStore creates a new deck store.
func NewDeckStore() *DeckStore {
	return &DeckStore{}
}

func flashcardsDir(sessionPath string) string {
	return filepath.Join(sessionPath, domain.FlashcardsDir)
}

// Save overwrites the deck's data file. Missing identity fields are filled
// in and LastModified is stamped on deck itself.
func (s *DeckStore) Save(_ context.Context, sessionPath string, deck *domain.Deck) error {
	if deck == nil {
		return domain.ErrInvalidInput
	}
	dirName := deck.DirName()
	if dirName == "" {
		return domain.ErrInvalidName
	}
	dir := filepath.Join(flashcardsDir(sessionPath), dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
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

	return writeJSON(filepath.Join(dir, domain.DeckDataFile), newDeckRecord(deck))
}

// List returns the decks of a session in directory order.
func (s *DeckStore) List(_ context.Context, sessionPath string) ([]domain.Deck, error) {
	entries, err := os.ReadDir(flashcardsDir(sessionPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Deck{}, nil
		}
		return nil, err
	}

	decks := make([]domain.Deck, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var rec deckRecord
		err := readJSON(filepath.Join(flashcardsDir(sessionPath), e.Name(), domain.DeckDataFile), &rec)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Error("skipping deck %s: %v", e.Name(), err)
			}
			continue
		}
		decks = append(decks, rec.toDomain())
	}
	return decks, nil
}

// Delete removes the deck directory.
func (s *DeckStore) Delete(_ context.Context, sessionPath, deckName string) error {
	dir, ok := s.find(sessionPath, deckName)
	if !ok {
		return domain.ErrDeckNotFound
	}
	return os.RemoveAll(dir)
}

// Rename moves the deck directory and updates the stored name.
func (s *DeckStore) Rename(_ context.Context, sessionPath, oldName, newName string) error {
	src, ok := s.find(sessionPath, oldName)
	if !ok {
		return domain.ErrDeckNotFound
	}
	dirName := domain.SanitizeName(newName)
	if dirName == "" {
		return domain.ErrInvalidName
	}
	dst := filepath.Join(flashcardsDir(sessionPath), dirName)
	if target, ok := findDirFold(flashcardsDir(sessionPath), dirName); ok && target != src {
		return domain.ErrDeckNameExists
	}

	if src != dst {
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}

	dataPath := filepath.Join(dst, domain.DeckDataFile)
	var rec deckRecord
	if err := readJSON(dataPath, &rec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return s.partialRename(dst, err)
	}
	rec.Name = newName
	rec.LastModified = time.Now()
	if err := writeJSON(dataPath, &rec); err != nil {
		return s.partialRename(dst, err)
	}
	return nil
}

func (s *DeckStore) partialRename(dst string, err error) error {
	return &domain.PartialFailureError{
		Op:        "rename deck",
		Completed: []string{"move directory to " + dst},
		Pending:   []string{"rewrite " + domain.DeckDataFile},
		Err:       err,
	}
}

// find locates a deck directory by sanitized name.
func (s *DeckStore) find(sessionPath, name string) (string, bool) {
	dirName := domain.SanitizeName(name)
	if dirName == "" {
		return "", false
	}
	return findDirFold(flashcardsDir(sessionPath), dirName)
}
