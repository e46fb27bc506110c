package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set", "reset"}, names)
}

func TestSettingsShow_Defaults(t *testing.T) {
	s := setupTestServices(t)

	out := mustExecute(t, "settings")

	assert.Contains(t, out, "Root: (default)")
	assert.Contains(t, out, "In use: "+s.Root)
	assert.Contains(t, out, "Work: 25 min")
	assert.Contains(t, out, "Rounds: 4")
	assert.Contains(t, out, "Autosave: every 30s")
	assert.Contains(t, out, "Theme: system")
}

func TestSettingsSet(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "settings", "set", "pomodoro.rounds", "6")
	assert.Contains(t, out, "pomodoro.rounds = 6")
	mustExecute(t, "settings", "set", "ui.theme", "Dark")

	out = mustExecute(t, "settings", "show", "--json")
	var settings domain.AppSettings
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	assert.Equal(t, 6, settings.Pomodoro.Rounds)
	assert.Equal(t, domain.ThemeDark, settings.UI.Theme)
}

func TestSettingsSet_StorageRootNotice(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "settings", "set", "storage.root", t.TempDir())

	assert.Contains(t, out, "used from the next command")
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name       string
		key, value string
	}{
		{"unknown key", "pomodoro.snooze", "5"},
		{"not a number", "pomodoro.rounds", "six"},
		{"out of range", "pomodoro.work_minutes", "500"},
		{"bad theme", "ui.theme", "sepia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "settings", "set", tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsReset(t *testing.T) {
	setupTestServices(t)
	mustExecute(t, "settings", "set", "pomodoro.rounds", "6")

	out := mustExecute(t, "settings", "reset")

	assert.Contains(t, out, "Settings reset to defaults.")
	assert.Contains(t, mustExecute(t, "settings"), "Rounds: 4")
}
