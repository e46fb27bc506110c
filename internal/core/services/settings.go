package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageRoot    = "storage.root"
	KeyPomodoroWork   = "pomodoro.work_minutes"
	KeyPomodoroShort  = "pomodoro.short_break_minutes"
	KeyPomodoroLong   = "pomodoro.long_break_minutes"
	KeyPomodoroRounds = "pomodoro.rounds"
	KeyNotesAutoSave  = "notes.autosave_seconds"
	KeyUITheme        = "ui.theme"
	KeyUILocale       = "ui.locale"
)

// SettingKeys lists every key accepted by Set.
func SettingKeys() []string {
	return []string{
		KeyStorageRoot,
		KeyPomodoroWork,
		KeyPomodoroShort,
		KeyPomodoroLong,
		KeyPomodoroRounds,
		KeyNotesAutoSave,
		KeyUITheme,
		KeyUILocale,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or non-positive values fall back
// to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Storage: domain.StorageSettings{
			Root: s.configStore.GetString(KeyStorageRoot),
		},
		Pomodoro: domain.PomodoroSettings{
			WorkMinutes:       s.getInt(KeyPomodoroWork, defaults.Pomodoro.WorkMinutes),
			ShortBreakMinutes: s.getInt(KeyPomodoroShort, defaults.Pomodoro.ShortBreakMinutes),
			LongBreakMinutes:  s.getInt(KeyPomodoroLong, defaults.Pomodoro.LongBreakMinutes),
			Rounds:            s.getInt(KeyPomodoroRounds, defaults.Pomodoro.Rounds),
		},
		Notes: domain.NoteSettings{
			AutoSaveSeconds: s.getInt(KeyNotesAutoSave, defaults.Notes.AutoSaveSeconds),
		},
		UI: domain.UISettings{
			Theme:  s.getString(KeyUITheme, defaults.UI.Theme),
			Locale: s.getString(KeyUILocale, defaults.UI.Locale),
		},
	}, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.Validate(settings); err != nil {
		return err
	}

	if settings.Storage.Root == "" {
		if err := s.configStore.Delete(KeyStorageRoot); err != nil {
			return fmt.Errorf("save %s: %w", KeyStorageRoot, err)
		}
	} else if err := s.configStore.Set(KeyStorageRoot, settings.Storage.Root); err != nil {
		return fmt.Errorf("save %s: %w", KeyStorageRoot, err)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyPomodoroWork, settings.Pomodoro.WorkMinutes},
		{KeyPomodoroShort, settings.Pomodoro.ShortBreakMinutes},
		{KeyPomodoroLong, settings.Pomodoro.LongBreakMinutes},
		{KeyPomodoroRounds, settings.Pomodoro.Rounds},
		{KeyNotesAutoSave, settings.Notes.AutoSaveSeconds},
		{KeyUITheme, settings.UI.Theme},
		{KeyUILocale, settings.UI.Locale},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyStorageRoot:
		settings.Storage.Root = value
	case KeyUITheme:
		settings.UI.Theme = strings.ToLower(value)
	case KeyUILocale:
		settings.UI.Locale = value
	case KeyPomodoroWork, KeyPomodoroShort, KeyPomodoroLong, KeyPomodoroRounds, KeyNotesAutoSave:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		*s.intField(settings, key) = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.Save(settings)
}

func (s *SettingsService) intField(settings *domain.AppSettings, key string) *int {
	switch key {
	case KeyPomodoroWork:
		return &settings.Pomodoro.WorkMinutes
	case KeyPomodoroShort:
		return &settings.Pomodoro.ShortBreakMinutes
	case KeyPomodoroLong:
		return &settings.Pomodoro.LongBreakMinutes
	case KeyPomodoroRounds:
		return &settings.Pomodoro.Rounds
	default:
		return &settings.Notes.AutoSaveSeconds
	}
}

// Validate checks settings against their constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	return validateStruct(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Export serialises the current settings as JSON.
func (s *SettingsService) Export() ([]byte, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(settings, "", "  ")
}

// Import applies settings exported by Export. Fields absent from data take
// their defaults. The storage root is machine-specific and is kept as is.
func (s *SettingsService) Import(data []byte) error {
	current, err := s.Get()
	if err != nil {
		return err
	}
	imported := domain.DefaultAppSettings()
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}
	imported.Storage = current.Storage
	return s.Save(&imported)
}

func (s *SettingsService) getInt(key string, def int) int {
	if n := s.configStore.GetInt(key); n > 0 {
		return n
	}
	return def
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}
