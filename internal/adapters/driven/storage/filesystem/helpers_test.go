package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// setupTestRoot creates a temporary root and a session store on it.
func setupTestRoot(t *testing.T) (*SessionStore, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), RootDirName)
	paths, err := NewPathResolver(root)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureRoot())

	return NewSessionStore(paths), root
}

// createTestSession saves an empty session and returns it.
func createTestSession(t *testing.T, store *SessionStore, name string) *domain.Session {
	t.Helper()
	session, err := store.Save(context.Background(), domain.SessionDraft{Name: name})
	require.NoError(t, err)
	return session
}

// writeSourceFile creates a file outside the root to be imported.
func writeSourceFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
