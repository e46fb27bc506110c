package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// setupDeck creates session Biologia with deck Cellula holding one card.
func setupDeck(t *testing.T) (*Services, int64) {
	t.Helper()
	s := setupTestServices(t)
	mustExecute(t, "session", "create", "Biologia")
	mustExecute(t, "deck", "create", "Biologia", "Cellula")
	mustExecute(t, "deck", "add-card", "Biologia", "Cellula", "Mitocondrio?", "Produce ATP")

	deck, err := s.Deck.Get(context.Background(), filepath.Join(s.Root, "Biologia"), "Cellula")
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)
	return s, deck.Cards[0].ID
}

func TestDeckCreateAndList(t *testing.T) {
	setupDeck(t)

	out := mustExecute(t, "deck", "list", "Biologia")

	assert.Contains(t, out, "Cellula")
	assert.Contains(t, out, "Cards: 1 (new 1, review 0, consolidated 0)")
	assert.Contains(t, out, "Total: 1 decks")
}

func TestDeckList_Empty(t *testing.T) {
	setupTestServices(t)
	mustExecute(t, "session", "create", "Biologia")

	assert.Contains(t, mustExecute(t, "deck", "list", "Biologia"), "No decks found.")
}

func TestDeckCreate_Duplicate(t *testing.T) {
	setupDeck(t)

	_, err := execute(t, "deck", "create", "Biologia", " Cellula ")

	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDeckShow(t *testing.T) {
	_, id := setupDeck(t)

	out := mustExecute(t, "deck", "show", "Biologia", "cellula")

	assert.Contains(t, out, "Deck: Cellula")
	assert.Contains(t, out, fmt.Sprintf("[%d] Mitocondrio?", id))
	assert.Contains(t, out, "Produce ATP")
}

func TestDeckShow_NotFound(t *testing.T) {
	setupDeck(t)

	_, err := execute(t, "deck", "show", "Biologia", "Genetica")

	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
}

func TestDeckCardLifecycle(t *testing.T) {
	s, id := setupDeck(t)
	ref := fmt.Sprint(id)

	out := mustExecute(t, "deck", "status", "Biologia", "Cellula", ref, "consolidated")
	assert.Contains(t, out, "is now consolidated")

	mustExecute(t, "deck", "edit-card", "Biologia", "Cellula", ref, "Mitocondri?", "Centrale energetica")

	deck, err := s.Deck.Get(context.Background(), filepath.Join(s.Root, "Biologia"), "Cellula")
	require.NoError(t, err)
	assert.Equal(t, "Mitocondri?", deck.Cards[0].Question)
	assert.Equal(t, domain.StatusConsolidated, deck.Cards[0].Status)

	out = mustExecute(t, "deck", "delete-card", "Biologia", "Cellula", ref)
	assert.Contains(t, out, "Deleted card")
	assert.Contains(t, mustExecute(t, "deck", "show", "Biologia", "Cellula"), "No cards.")
}

func TestDeckStatus_Invalid(t *testing.T) {
	_, id := setupDeck(t)

	_, err := execute(t, "deck", "status", "Biologia", "Cellula", fmt.Sprint(id), "forgotten")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeckEditCard_BadID(t *testing.T) {
	setupDeck(t)

	_, err := execute(t, "deck", "edit-card", "Biologia", "Cellula", "abc", "q", "a")

	assert.Error(t, err)
}

func TestDeckRenameAndDelete(t *testing.T) {
	setupDeck(t)

	out := mustExecute(t, "deck", "rename", "Biologia", "Cellula", "Cellula animale")
	assert.Contains(t, out, `Renamed deck "Cellula" to "Cellula animale"`)

	out = mustExecute(t, "deck", "delete", "Biologia", "Cellula animale")
	assert.Contains(t, out, `Deleted deck "Cellula animale"`)
	assert.Contains(t, mustExecute(t, "deck", "list", "Biologia"), "No decks found.")
}
