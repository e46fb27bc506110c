package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func TestImportHistoryStore_NewestFirst(t *testing.T) {
	store := NewImportHistoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, domain.ImportRecord{ID: "a", CreatedAt: base}))
	require.NoError(t, store.Record(ctx, domain.ImportRecord{ID: "c", CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, store.Record(ctx, domain.ImportRecord{ID: "b", CreatedAt: base.Add(time.Hour)}))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
