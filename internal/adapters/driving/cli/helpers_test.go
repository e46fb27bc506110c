package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/archive"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/services"
	"github.com/custodia-labs/sprout-cli/internal/importers"
)

// setupTestServices wires real services onto a fresh root and installs them
// for the command tree. Everything is reset when the test ends.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	paths, err := filesystem.NewPathResolver(filepath.Join(t.TempDir(), filesystem.RootDirName))
	require.NoError(t, err)
	require.NoError(t, paths.EnsureRoot())

	decks := filesystem.NewDeckStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	s := &Services{
		Root:     paths.Root(),
		Session:  services.NewSessionService(filesystem.NewSessionStore(paths), decks, paths),
		File:     services.NewFileService(filesystem.NewFileStore()),
		Deck:     services.NewDeckService(decks),
		Note:     services.NewNoteService(filesystem.NewNoteStore(), render.NewHTML()),
		Import:   services.NewImportService(importers.DefaultRegistry(), decks, memory.NewImportHistoryStore()),
		Backup:   services.NewBackupService(archive.New(), paths, settings),
		Settings: settings,
		Watcher:  watcher.New(0),
	}

	factory = nil
	useServices(s)
	resetFlags()
	t.Cleanup(func() {
		useServices(&Services{})
		resetFlags()
	})
	return s
}

// resetFlags restores flag variables, which persist between executions.
func resetFlags() {
	verbose = false
	rootFlag = ""
	outputJSON = false
	sessionRecent = false
	sessionExclude = ""
	noteMarkdown = false
	noteFrom = ""
	noteFormat = domain.ExportMarkdown
	importFormat = ""
	importDelimiter = ""
	importQuote = ""
	importDeck = ""
	importNewDeck = ""
	importUseDeckField = false
	importDryRun = false
	importHistoryLimit = 20
	backupYes = false
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// mustExecute fails the test when the command errors.
func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

// writeFile creates a file outside the root.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
