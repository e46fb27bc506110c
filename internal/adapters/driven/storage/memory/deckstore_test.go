package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func TestDeckStore_SaveListIsolation(t *testing.T) {
	store := NewDeckStore()
	ctx := context.Background()
	deck := &domain.Deck{Name: "Bio", Cards: []domain.Flashcard{{ID: 1, Question: "Q", Answer: "A"}}}

	require.NoError(t, store.Save(ctx, "/s1", deck))
	deck.Cards[0].Question = "mutated"

	decks, err := store.List(ctx, "/s1")
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "Q", decks[0].Cards[0].Question)
	assert.NotEmpty(t, decks[0].UUID)

	other, err := store.List(ctx, "/s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeckStore_RenameAndDelete(t *testing.T) {
	store := NewDeckStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "/s", &domain.Deck{Name: "Bio"}))
	require.NoError(t, store.Save(ctx, "/s", &domain.Deck{Name: "Chem"}))

	assert.ErrorIs(t, store.Rename(ctx, "/s", "Bio", "CHEM"), domain.ErrDeckNameExists)
	assert.ErrorIs(t, store.Rename(ctx, "/s", "Geo", "X"), domain.ErrDeckNotFound)
	require.NoError(t, store.Rename(ctx, "/s", "bio", "Biology"))

	decks, err := store.List(ctx, "/s")
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, "Biology", decks[0].Name)

	require.NoError(t, store.Delete(ctx, "/s", "Biology"))
	assert.ErrorIs(t, store.Delete(ctx, "/s", "Biology"), domain.ErrDeckNotFound)
}
