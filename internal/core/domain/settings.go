package domain

// Theme values accepted by the UI.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// SettingsFileName is the settings entry at the root of a backup archive.
const SettingsFileName = "settings.json"

// AppSettings are the user preferences carried across backups.
type AppSettings struct {
	Storage  StorageSettings  `json:"storage"`
	Pomodoro PomodoroSettings `json:"pomodoro"`
	Notes    NoteSettings     `json:"notes"`
	UI       UISettings       `json:"ui"`
}

// StorageSettings locate the data.
type StorageSettings struct {
	// Root overrides the default root directory when non-empty.
	Root string `json:"root,omitempty"`
}

// PomodoroSettings configure the study timer.
type PomodoroSettings struct {
	WorkMinutes       int `json:"workMinutes" validate:"min=1,max=180"`
	ShortBreakMinutes int `json:"shortBreakMinutes" validate:"min=1,max=60"`
	LongBreakMinutes  int `json:"longBreakMinutes" validate:"min=1,max=120"`
	Rounds            int `json:"rounds" validate:"min=1,max=12"`
}

// NoteSettings configure the editor.
type NoteSettings struct {
	AutoSaveSeconds int `json:"autoSaveSeconds" validate:"min=1,max=3600"`
}

// UISettings configure presentation.
type UISettings struct {
	Theme  string `json:"theme" validate:"oneof=light dark system"`
	Locale string `json:"locale" validate:"required"`
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pomodoro: PomodoroSettings{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			Rounds:            4,
		},
		Notes: NoteSettings{AutoSaveSeconds: 30},
		UI:    UISettings{Theme: ThemeSystem, Locale: "it-IT"},
	}
}
