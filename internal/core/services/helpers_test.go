package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// fixedNow is the clock used by services under test.
var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// setupFilesystem returns a path resolver on a fresh root and a session store.
func setupFilesystem(t *testing.T) (*filesystem.PathResolver, *filesystem.SessionStore) {
	t.Helper()
	paths, err := filesystem.NewPathResolver(filepath.Join(t.TempDir(), filesystem.RootDirName))
	require.NoError(t, err)
	require.NoError(t, paths.EnsureRoot())
	return paths, filesystem.NewSessionStore(paths)
}

// writeSource creates a file outside the root.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// failingDeckStore fails Save for one deck name and delegates the rest.
type failingDeckStore struct {
	inner  driven.DeckStore
	failOn string
	err    error
}

func (f *failingDeckStore) Save(ctx context.Context, sessionPath string, deck *domain.Deck) error {
	if deck.Name == f.failOn {
		return f.err
	}
	return f.inner.Save(ctx, sessionPath, deck)
}

func (f *failingDeckStore) List(ctx context.Context, sessionPath string) ([]domain.Deck, error) {
	return f.inner.List(ctx, sessionPath)
}

func (f *failingDeckStore) Delete(ctx context.Context, sessionPath, deckName string) error {
	return f.inner.Delete(ctx, sessionPath, deckName)
}

func (f *failingDeckStore) Rename(ctx context.Context, sessionPath, oldName, newName string) error {
	return f.inner.Rename(ctx, sessionPath, oldName, newName)
}
