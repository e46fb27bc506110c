package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/archive"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/services"
	"github.com/custodia-labs/sprout-cli/internal/importers"
)

// newTestServer wires a server onto real services rooted in a temp directory.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	paths, err := filesystem.NewPathResolver(filepath.Join(t.TempDir(), filesystem.RootDirName))
	require.NoError(t, err)
	require.NoError(t, paths.EnsureRoot())

	decks := filesystem.NewDeckStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	server, err := NewServer(&Ports{
		Session: services.NewSessionService(filesystem.NewSessionStore(paths), decks, paths),
		File:    services.NewFileService(filesystem.NewFileStore()),
		Deck:    services.NewDeckService(decks),
		Note:    services.NewNoteService(filesystem.NewNoteStore(), render.NewHTML()),
		Import:  services.NewImportService(importers.DefaultRegistry(), decks, memory.NewImportHistoryStore()),
		Backup:  services.NewBackupService(archive.New(), paths, settings),
	})
	require.NoError(t, err)
	return server, paths.Root()
}

// createSession saves a session through the tool and returns its path.
func createSession(t *testing.T, s *Server, name string) string {
	t.Helper()
	_, out, err := s.handleSaveSession(context.Background(), nil, SaveSessionInput{Name: name})
	require.NoError(t, err)
	require.True(t, out.Success, out.Message)
	return out.Session.FullPath
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	sessions []domain.Session
	session  *domain.Session
	err      error
}

func (m *mockSessionService) List(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}

func (m *mockSessionService) Resolve(_ context.Context, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Create(_ context.Context, _ string, _ []string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Save(_ context.Context, _ domain.SessionDraft) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Merge(_ context.Context, _ string, _ map[string]any) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) NameExists(_ context.Context, _, _ string) (bool, error) {
	return false, m.err
}

func (m *mockSessionService) Rename(_ context.Context, _, _ string) (*domain.SessionRename, error) {
	return nil, m.err
}

func (m *mockSessionService) Delete(_ context.Context, _ string) error {
	return m.err
}
