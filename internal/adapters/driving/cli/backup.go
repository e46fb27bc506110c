package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive or restore all data",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [destination]",
	Short: "Write a zip archive of all sessions and settings",
	Long: `Write a zip archive holding every session under sprout_data/ and the
current settings as settings.json. A directory destination gets a
timestamped file name.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [archive]",
	Short: "Replace all data with a backup",
	Long: `Replace the data directory with the archive's contents and apply its
settings. Existing data is deleted first and cannot be recovered.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

var backupYes bool

func init() {
	backupRestoreCmd.Flags().BoolVarP(&backupYes, "yes", "y", false, "Skip the confirmation prompt")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	result, err := backupService.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Backup written to %s (%d files)\n", result.Path, result.Files)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	if !backupYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("restore deletes all current data; pass --yes to confirm")
		}
		cmd.Printf("Restoring %s will delete everything in %s. Continue? [y/N]: ", args[0], rootPath)
		if !confirmed(bufio.NewReader(cmd.InOrStdin())) {
			cmd.Println("Restore cancelled.")
			return nil
		}
	}

	result, err := backupService.Restore(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Restored %d files\n", result.Files)
	if result.SettingsRestored {
		cmd.Println("Settings restored.")
	}
	return nil
}

func confirmed(reader *bufio.Reader) bool {
	input, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "s", "si", "sì":
		return true
	default:
		return false
	}
}
