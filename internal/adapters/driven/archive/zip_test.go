package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func entryNames(t *testing.T, archivePath string) []string {
	t.Helper()
	zr, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestZip_CreateAndRestore(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "Sprout")
	writeTree(t, root, map[string]string{
		"Biology/session.json":                   `{"id":1,"name":"Biology"}`,
		"Biology/appunti.json":                   `{"type":"doc","content":[]}`,
		"Biology/documents/cells.pdf":            "pdf",
		"Biology/flashcards/Chapter 1/data.json": `{"name":"Chapter 1"}`,
	})
	dest := filepath.Join(t.TempDir(), "backup.zip")

	z := New()
	count, err := z.Create(ctx, root, dest, []byte(`{"ui":{"theme":"dark"}}`))
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	names := entryNames(t, dest)
	assert.Contains(t, names, "sprout_data/Biology/session.json")
	assert.Contains(t, names, "sprout_data/Biology/flashcards/Chapter 1/data.json")
	assert.Contains(t, names, "settings.json")

	// Data written after the backup disappears on restore.
	writeTree(t, root, map[string]string{"Chemistry/session.json": "{}"})

	settings, restored, err := z.Restore(ctx, dest, root)
	require.NoError(t, err)
	assert.Equal(t, 4, restored)
	assert.JSONEq(t, `{"ui":{"theme":"dark"}}`, string(settings))

	data, err := os.ReadFile(filepath.Join(root, "Biology", "documents", "cells.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))
	assert.NoDirExists(t, filepath.Join(root, "Chemistry"))
}

func TestZip_CreateWithoutSettings(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"A/session.json": "{}"})
	dest := filepath.Join(t.TempDir(), "out", "backup.zip")

	count, err := New().Create(context.Background(), root, dest, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, entryNames(t, dest), "settings.json")
}

func TestZip_CreateRejectsDestinationInsideRoot(t *testing.T) {
	root := t.TempDir()
	_, err := New().Create(context.Background(), root, filepath.Join(root, "backup.zip"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoFileExists(t, filepath.Join(root, "backup.zip"))
}

func TestZip_RestoreMissingArchiveKeepsData(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"A/session.json": "{}"})

	_, _, err := New().Restore(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), root)
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(root, "A", "session.json"))
}

func TestZip_RestoreRejectsEscapingEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"A/session.json": "{}"})

	archivePath := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("sprout_data/../../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, _, err = New().Restore(context.Background(), archivePath, root)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.FileExists(t, filepath.Join(root, "A", "session.json"))
}

func TestSafeEntry(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{"plain", "A/session.json", true},
		{"directory", "A/", true},
		{"empty", "", true},
		{"parent", "../x", false},
		{"nested parent", "A/../../x", false},
		{"absolute", "/etc/passwd", false},
		{"backslash", `A\..\x`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeEntry(tt.rel))
		})
	}
}
