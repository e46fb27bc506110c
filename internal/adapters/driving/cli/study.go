package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/styles"
)

var studyCmd = &cobra.Command{
	Use:   "study [session] [deck]",
	Short: "Review flashcards in the terminal",
	Long: `Open the interactive study view for a session. With a deck name the
deck opens straight away; otherwise pick one from the list.

Controls:
  ↑/k, ↓/j   Choose a deck
  Enter      Study the deck
  Space      Reveal / hide the answer
  →/n, ←/p   Next / previous card
  1, 2, 3    Mark new, review, consolidated
  f          Show only cards not yet consolidated
  Esc        Back to the deck list
  q          Quit`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStudy,
}

func init() {
	rootCmd.AddCommand(studyCmd)
}

func runStudy(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in study view: %v", r)
		}
	}()

	if deckService == nil {
		return errors.New("deck service not configured")
	}

	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	theme := ""
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			theme = settings.UI.Theme
		}
	}

	ports := tui.NewPorts(deckService)
	if err := ports.Validate(); err != nil {
		return err
	}
	app := tui.NewAppWithStyles(ports, session, styles.NewStyles(styles.ThemeFor(theme))).
		WithContext(cmd.Context())
	if len(args) == 2 {
		app.WithDeck(args[1])
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("study view: %w", err)
	}
	return nil
}
