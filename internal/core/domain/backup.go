package domain

// BackupDataDir is the archive prefix that mirrors the root directory.
const BackupDataDir = "sprout_data"

// BackupResult reports a created backup.
type BackupResult struct {
	Path  string `json:"path"`
	Files int    `json:"files"`
}

// RestoreResult reports a restored backup.
type RestoreResult struct {
	Files            int  `json:"files"`
	SettingsRestored bool `json:"settingsRestored"`
}

// Note export formats.
const (
	ExportMarkdown = "md"
	ExportHTML     = "html"
)
