package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

func TestSessionStore_SaveThenList(t *testing.T) {
	store, root := setupTestRoot(t)
	ctx := context.Background()
	src := writeSourceFile(t, "cell.png", "png-bytes")

	saved, err := store.Save(ctx, domain.SessionDraft{
		Name:  "Biologia: cellule!",
		Files: []domain.FileRef{{SourcePath: src, Name: "cell.png"}},
	})
	require.NoError(t, err)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, "Biologia: cellule!", got.Name)
	assert.Equal(t, []string{"images/cell.png"}, got.Files)
	assert.Equal(t, filepath.Join(root, "Biologia cellule"), got.FullPath)
	assert.Equal(t, saved.UUID, got.UUID)
	assert.NotZero(t, got.ID)

	copied, err := os.ReadFile(filepath.Join(root, "Biologia cellule", "images", "cell.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(copied))
}

func TestSessionStore_SaveCopyFailureRecordsBareName(t *testing.T) {
	store, _ := setupTestRoot(t)
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	saved, err := store.Save(context.Background(), domain.SessionDraft{
		Name:  "Physics",
		Files: []domain.FileRef{{SourcePath: "/does/not/exist.pdf", Name: "exist.pdf"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"exist.pdf"}, saved.Files)
	assert.Contains(t, logs.String(), "[ERROR]")
}

func TestSessionStore_SaveKeepsIdentity(t *testing.T) {
	store, _ := setupTestRoot(t)
	ctx := context.Background()

	first := createTestSession(t, store, "Chemistry")
	second, err := store.Save(ctx, domain.SessionDraft{
		Name:  "Chemistry",
		Files: []domain.FileRef{{RelPath: "documents/a.pdf"}},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UUID, second.UUID)
	assert.Equal(t, []string{"documents/a.pdf"}, second.Files)
}

func TestSessionStore_SaveRejectsForeignUUID(t *testing.T) {
	store, _ := setupTestRoot(t)
	createTestSession(t, store, "Chemistry")

	_, err := store.Save(context.Background(), domain.SessionDraft{Name: "Chemistry!", UUID: "other"})

	assert.ErrorIs(t, err, domain.ErrSessionNameExists)
}

func TestSessionStore_SaveEmptyName(t *testing.T) {
	store, _ := setupTestRoot(t)

	_, err := store.Save(context.Background(), domain.SessionDraft{Name: "???"})

	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSessionStore_ListSkipsBrokenDescriptors(t *testing.T) {
	store, root := setupTestRoot(t)
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	createTestSession(t, store, "Good")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Broken"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Broken", domain.SessionDescriptorFile), []byte("{not json"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "NoDescriptor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644))

	sessions, err := store.List(context.Background())
	require.NoError(t, err)

	require.Len(t, sessions, 1)
	assert.Equal(t, "Good", sessions[0].Name)
	assert.Contains(t, logs.String(), "Broken")
	assert.NotContains(t, logs.String(), "NoDescriptor")
}

func TestSessionStore_ListMissingRoot(t *testing.T) {
	paths, err := NewPathResolver(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)

	sessions, err := NewSessionStore(paths).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionStore_NameExists(t *testing.T) {
	store, _ := setupTestRoot(t)
	ctx := context.Background()
	session := createTestSession(t, store, "History")

	tests := []struct {
		name    string
		input   string
		exclude string
		want    bool
	}{
		{"exact", "History", "", true},
		{"different case", "history", "", true},
		{"sanitizes to existing", "History!", "", true},
		{"self excluded", "HISTORY", session.FullPath, false},
		{"free", "Geography", "", false},
		{"empty after sanitize", "!!!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.NameExists(ctx, tt.input, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionStore_Rename(t *testing.T) {
	store, root := setupTestRoot(t)
	ctx := context.Background()
	session := createTestSession(t, store, "Math")

	result, err := store.Rename(ctx, session.FullPath, "Math II")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Math II"), result.NewPath)
	assert.Equal(t, "Math II", result.Session.Name)
	assert.Equal(t, session.UUID, result.Session.UUID)
	assert.NoDirExists(t, session.FullPath)
	assert.FileExists(t, filepath.Join(result.NewPath, domain.SessionDescriptorFile))
}

func TestSessionStore_RenameCollision(t *testing.T) {
	store, _ := setupTestRoot(t)
	ctx := context.Background()
	math := createTestSession(t, store, "Math")
	physics := createTestSession(t, store, "Physics")

	_, err := store.Rename(ctx, math.FullPath, "PHYSICS")

	assert.ErrorIs(t, err, domain.ErrSessionNameExists)
	assert.Equal(t, domain.CodeSessionNameExists, domain.ErrorCode(err))
	assert.DirExists(t, math.FullPath)
	assert.DirExists(t, physics.FullPath)
}

func TestSessionStore_RenameCaseOnly(t *testing.T) {
	store, root := setupTestRoot(t)
	session := createTestSession(t, store, "math")

	result, err := store.Rename(context.Background(), session.FullPath, "Math")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Math"), result.NewPath)
	assert.Equal(t, "Math", result.Session.Name)
}

func TestSessionStore_RenameErrors(t *testing.T) {
	store, root := setupTestRoot(t)
	ctx := context.Background()
	session := createTestSession(t, store, "Math")

	_, err := store.Rename(ctx, session.FullPath, "***")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = store.Rename(ctx, filepath.Join(root, "Ghost"), "Other")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "Bare"), 0755))
	_, err = store.Rename(ctx, filepath.Join(root, "Bare"), "Other")
	require.Error(t, err)
	assert.Equal(t, domain.CodeIO, domain.ErrorCode(err))
	assert.DirExists(t, filepath.Join(root, "Bare"))
}

func TestSessionStore_Delete(t *testing.T) {
	store, root := setupTestRoot(t)
	ctx := context.Background()
	session := createTestSession(t, store, "Temp")

	require.NoError(t, store.Delete(ctx, session.FullPath))
	assert.NoDirExists(t, session.FullPath)

	err := store.Delete(ctx, filepath.Join(root, "Temp"))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_DeleteOutsideRoot(t *testing.T) {
	store, _ := setupTestRoot(t)
	outside := t.TempDir()

	err := store.Delete(context.Background(), outside)

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.DirExists(t, outside)
}

func TestSessionStore_Merge(t *testing.T) {
	store, _ := setupTestRoot(t)
	ctx := context.Background()
	saved, err := store.Save(ctx, domain.SessionDraft{
		Name:  "Latin",
		Files: []domain.FileRef{{RelPath: "documents/grammar.pdf"}},
	})
	require.NoError(t, err)

	merged, err := store.Merge(ctx, saved.FullPath, map[string]any{
		"color":    "green",
		"fullPath": "/elsewhere",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"documents/grammar.pdf"}, merged.Files)
	assert.Equal(t, saved.FullPath, merged.FullPath)

	raw, err := os.ReadFile(filepath.Join(saved.FullPath, domain.SessionDescriptorFile))
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "green", fields["color"])
	assert.NotContains(t, fields, "fullPath")

	merged, err = store.Merge(ctx, saved.FullPath, map[string]any{"files": []string{}})
	require.NoError(t, err)
	assert.Empty(t, merged.Files)
}

func TestSessionStore_MergeRejectsBadTypes(t *testing.T) {
	store, _ := setupTestRoot(t)
	session := createTestSession(t, store, "Latin")

	_, err := store.Merge(context.Background(), session.FullPath, map[string]any{"createdAt": "yesterday"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionStore_MergeMissingSession(t *testing.T) {
	store, root := setupTestRoot(t)

	_, err := store.Merge(context.Background(), filepath.Join(root, "Nope"), map[string]any{"a": 1})

	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}
