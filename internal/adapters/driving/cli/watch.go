package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to sessions, decks and notes as they happen",
	Long: `Watch the data directory and print one line per change until
interrupted. Rapid successive writes to the same file are reported once.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if storageWatcher == nil {
		return errors.New("storage watcher not configured")
	}
	if rootPath == "" {
		return errors.New("data directory not configured")
	}

	events, err := storageWatcher.Watch(cmd.Context(), rootPath)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", rootPath)
	for ev := range events {
		if outputJSON {
			if err := printJSON(cmd, map[string]string{
				"type":    ev.Type.String(),
				"kind":    string(ev.Kind),
				"session": ev.Session,
				"path":    ev.Path,
			}); err != nil {
				return err
			}
			continue
		}
		cmd.Printf("%-8s %-7s %s/%s\n", ev.Type, ev.Kind, ev.Session, ev.Path)
	}
	return nil
}
