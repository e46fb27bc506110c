package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func setupNoteSession(t *testing.T) (*NoteService, string) {
	t.Helper()
	_, store := setupFilesystem(t)
	session, err := store.Save(context.Background(), domain.SessionDraft{Name: "Filosofia"})
	require.NoError(t, err)
	return NewNoteService(filesystem.NewNoteStore(), render.NewHTML()), session.FullPath
}

func TestNoteService_AutoSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	service, dir := setupNoteSession(t)

	doc := map[string]any{
		"type": "doc",
		"content": []any{
			map[string]any{"type": "paragraph", "content": []any{
				map[string]any{"type": "text", "text": "Kant"},
			}},
		},
	}
	stamp, err := service.AutoSave(ctx, dir, doc)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}, \d{2}:\d{2}:\d{2}$`, stamp)

	loaded, err := service.Load(ctx, dir)
	require.NoError(t, err)
	assert.False(t, loaded.Migrated)

	want, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(loaded.Document))
}

func TestNoteService_AutoSaveString(t *testing.T) {
	ctx := context.Background()
	service, dir := setupNoteSession(t)

	_, err := service.AutoSave(ctx, dir, `{"type":"doc","content":[]}`)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, domain.NoteFileName))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"doc","content":[]}`, string(data))

	_, err = service.AutoSave(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestNoteService_SaveNamed(t *testing.T) {
	ctx := context.Background()
	service, dir := setupNoteSession(t)

	_, err := service.SaveNamed(ctx, dir, "  ", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	path, err := service.SaveNamed(ctx, dir, "riassunto", "testo")
	require.NoError(t, err)
	assert.Equal(t, "riassunto.txt", filepath.Base(path))
}

func TestNoteService_Export(t *testing.T) {
	ctx := context.Background()
	service, dir := setupNoteSession(t)

	_, err := service.AutoSave(ctx, dir, json.RawMessage(
		`{"type":"doc","content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Etica"}]}]}`))
	require.NoError(t, err)

	mdPath, err := service.Export(ctx, dir, "etica", domain.ExportMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "etica.md", filepath.Base(mdPath))
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "## Etica\n", string(md))

	htmlPath, err := service.Export(ctx, dir, "etica", "HTML")
	require.NoError(t, err)
	assert.Equal(t, "etica.html", filepath.Base(htmlPath))
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h2>Etica</h2>")

	_, err = service.Export(ctx, dir, "etica", "pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestNoteService_LoadEmpty(t *testing.T) {
	service, dir := setupNoteSession(t)

	loaded, err := service.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","content":[]}`, string(loaded.Document))
}
