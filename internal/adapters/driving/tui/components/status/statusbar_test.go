package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilArgs(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_UpdateIsPassive(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"ready", StateReady, "", "Ready"},
		{"ready with message", StateReady, "3 decks", "3 decks"},
		{"loading", StateLoading, "", "Loading..."},
		{"saving", StateSaving, "", "Saving..."},
		{"error", StateError, "disk full", "Error: disk full"},
		{"bare error", StateError, "", "Error"},
		{"studying", StateStudying, "Biologia", "Card 2/5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetProgress(2, 5)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_StudyHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)
	bar.SetState(StateStudying)

	assert.Contains(t, bar.View(), "flip")

	bar.SetState(StateReady)
	assert.Contains(t, bar.View(), "quit")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetProgress(3, 4)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	pos, total := bar.Progress()
	assert.Zero(t, pos)
	assert.Zero(t, total)
}
