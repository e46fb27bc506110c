package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long:  `View and change timer, note and interface settings.`,
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Keys:
  storage.root                 data directory (empty for the default)
  pomodoro.work_minutes        1-180
  pomodoro.short_break_minutes 1-60
  pomodoro.long_break_minutes  1-120
  pomodoro.rounds              1-12
  notes.autosave_seconds       1-3600
  ui.theme                     light, dark or system
  ui.locale                    e.g. it-IT`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	root := settings.Storage.Root
	if root == "" {
		root = "(default)"
	}
	cmd.Printf("  Root: %s\n", root)
	if rootPath != "" {
		cmd.Printf("  In use: %s\n", rootPath)
	}
	cmd.Println()

	cmd.Println("[Pomodoro]")
	cmd.Printf("  Work: %d min\n", settings.Pomodoro.WorkMinutes)
	cmd.Printf("  Short break: %d min\n", settings.Pomodoro.ShortBreakMinutes)
	cmd.Printf("  Long break: %d min\n", settings.Pomodoro.LongBreakMinutes)
	cmd.Printf("  Rounds: %d\n", settings.Pomodoro.Rounds)
	cmd.Println()

	cmd.Println("[Notes]")
	cmd.Printf("  Autosave: every %ds\n", settings.Notes.AutoSaveSeconds)
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Theme: %s\n", settings.UI.Theme)
	cmd.Printf("  Locale: %s\n", settings.UI.Locale)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	if args[0] == services.KeyStorageRoot {
		cmd.Println("The new data directory is used from the next command.")
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings reset to defaults.")
	return nil
}
