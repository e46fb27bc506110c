package driving

import "github.com/custodia-labs/sprout-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Export serialises current settings for a backup.
	Export() ([]byte, error)

	// Import applies settings from a backup.
	Import(data []byte) error
}
