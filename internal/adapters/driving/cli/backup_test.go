package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCreateAndRestore(t *testing.T) {
	s := setupTestServices(t)
	mustExecute(t, "session", "create", "Biologia")
	mustExecute(t, "deck", "create", "Biologia", "Cellula")
	mustExecute(t, "settings", "set", "pomodoro.rounds", "7")

	dest := filepath.Join(t.TempDir(), "backup.zip")
	out := mustExecute(t, "backup", "create", dest)
	assert.Contains(t, out, "Backup written to "+dest)
	assert.FileExists(t, dest)

	mustExecute(t, "session", "delete", "Biologia")
	mustExecute(t, "session", "create", "Chimica")
	mustExecute(t, "settings", "set", "pomodoro.rounds", "2")

	out = mustExecute(t, "backup", "restore", dest, "--yes")
	assert.Contains(t, out, "Restored")
	assert.Contains(t, out, "Settings restored.")

	assert.DirExists(t, filepath.Join(s.Root, "Biologia"))
	assert.NoDirExists(t, filepath.Join(s.Root, "Chimica"))
	assert.Contains(t, mustExecute(t, "deck", "list", "Biologia"), "Cellula")
	assert.Contains(t, mustExecute(t, "settings"), "Rounds: 7")
}

func TestBackupCreate_IntoDirectory(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()

	mustExecute(t, "backup", "create", dir)

	matches, err := filepath.Glob(filepath.Join(dir, "sprout_backup_*.zip"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestBackupRestore_MissingArchive(t *testing.T) {
	s := setupTestServices(t)
	mustExecute(t, "session", "create", "Biologia")

	_, err := execute(t, "backup", "restore", filepath.Join(t.TempDir(), "missing.zip"), "--yes")

	assert.Error(t, err)
	assert.DirExists(t, filepath.Join(s.Root, "Biologia"))
}

func TestBackupRestore_NotAZip(t *testing.T) {
	s := setupTestServices(t)
	mustExecute(t, "session", "create", "Biologia")
	bogus := writeFile(t, "bogus.zip", "not a zip")

	_, err := execute(t, "backup", "restore", bogus, "--yes")

	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(s.Root, "Biologia"))
	assert.NoError(t, statErr)
}

func TestConfirmed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"sì\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, confirmed(bufio.NewReader(strings.NewReader(tt.input))))
		})
	}
}
