package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("ui.theme", "dark"))
	require.NoError(t, store.Set("pomodoro.rounds", int64(4)))

	val, ok := store.Get("ui.theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", val)
	assert.Equal(t, "dark", store.GetString("ui.theme"))
	assert.Equal(t, 4, store.GetInt("pomodoro.rounds"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("pomodoro.rounds", "four"))
	require.NoError(t, store.Set("ui.theme", 3))

	assert.Zero(t, store.GetInt("pomodoro.rounds"))
	assert.Empty(t, store.GetString("ui.theme"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetIntConversions(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a", 1))
	require.NoError(t, store.Set("b", int64(2)))
	require.NoError(t, store.Set("c", float64(3)))

	assert.Equal(t, 1, store.GetInt("a"))
	assert.Equal(t, 2, store.GetInt("b"))
	assert.Equal(t, 3, store.GetInt("c"))
}

func TestConfigStore_DeleteAndKeys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ui.locale", "en-GB"))
	require.NoError(t, store.Set("storage.root", "/data"))
	require.NoError(t, store.Set("notes.autosave_seconds", 10))

	assert.Equal(t, []string{"notes.autosave_seconds", "storage.root", "ui.locale"}, store.Keys())

	require.NoError(t, store.Delete("storage.root"))
	_, ok := store.Get("storage.root")
	assert.False(t, ok)
	assert.Len(t, store.Keys(), 2)
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("pomodoro.rounds", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("pomodoro.rounds")
		}()
	}
	wg.Wait()

	_, ok := store.Get("pomodoro.rounds")
	assert.True(t, ok)
}
