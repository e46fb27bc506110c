package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func TestClassify(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "Sprout")

	tests := []struct {
		name   string
		path   string
		want   domain.StorageEvent
		wantOK bool
	}{
		{"session dir", "Biology", domain.StorageEvent{Kind: domain.KindSession, Session: "Biology"}, true},
		{"descriptor", "Biology/session.json", domain.StorageEvent{Kind: domain.KindSession, Session: "Biology", Path: "session.json"}, true},
		{"note", "Biology/appunti.json", domain.StorageEvent{Kind: domain.KindNote, Session: "Biology", Path: "appunti.json"}, true},
		{"legacy note", "Biology/appunti.txt", domain.StorageEvent{Kind: domain.KindNote, Session: "Biology", Path: "appunti.txt"}, true},
		{"deck", "Biology/flashcards/Cells/data.json", domain.StorageEvent{Kind: domain.KindDeck, Session: "Biology", Path: "flashcards/Cells/data.json"}, true},
		{"file", "Biology/images/cell.png", domain.StorageEvent{Kind: domain.KindFile, Session: "Biology", Path: "images/cell.png"}, true},
		{"root", "", domain.StorageEvent{}, false},
		{"hidden", "Biology/.DS_Store", domain.StorageEvent{}, false},
		{"hidden dir", ".trash/x", domain.StorageEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(root, filepath.Join(root, filepath.FromSlash(tt.path)))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_OutsideRoot(t *testing.T) {
	_, ok := Classify("/data/Sprout", "/data/Other/session.json")
	assert.False(t, ok)
}

func TestNew_DefaultDebounce(t *testing.T) {
	assert.Equal(t, DefaultDebounce, New(0).debounce)
	assert.Equal(t, time.Second, New(time.Second).debounce)
}

func waitFor(t *testing.T, events <-chan domain.StorageEvent, match func(domain.StorageEvent) bool) domain.StorageEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event channel closed")
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Biology"), 0755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := New(20*time.Millisecond).Watch(ctx, root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "Biology", "appunti.json"), []byte("{}"), 0644))
	ev := waitFor(t, events, func(ev domain.StorageEvent) bool { return ev.Kind == domain.KindNote })
	assert.Equal(t, "Biology", ev.Session)
	assert.Equal(t, domain.ChangeCreated, ev.Type)

	// Directories created after the watch starts are watched too.
	deckDir := filepath.Join(root, "Biology", "flashcards", "Cells")
	require.NoError(t, os.MkdirAll(deckDir, 0755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(deckDir, "data.json"), []byte("{}"), 0644))
	ev = waitFor(t, events, func(ev domain.StorageEvent) bool {
		return ev.Kind == domain.KindDeck && ev.Path == "flashcards/Cells/data.json"
	})
	assert.Equal(t, "Biology", ev.Session)

	require.NoError(t, os.Remove(filepath.Join(root, "Biology", "appunti.json")))
	ev = waitFor(t, events, func(ev domain.StorageEvent) bool {
		return ev.Kind == domain.KindNote && ev.Type == domain.ChangeDeleted
	})
	assert.Equal(t, "appunti.json", ev.Path)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := New(10*time.Millisecond).Watch(ctx, t.TempDir())
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := New(0).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
