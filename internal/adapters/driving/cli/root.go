// Package cli provides the sprout command tree.
package cli

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services holds everything the commands call into.
type Services struct {
	Root     string
	Session  driving.SessionService
	File     driving.FileService
	Deck     driving.DeckService
	Note     driving.NoteService
	Import   driving.ImportService
	Backup   driving.BackupService
	Settings driving.SettingsService
	Watcher  driven.StorageWatcher
}

// ServiceFactory builds the services once flags are parsed. rootOverride is
// the --root flag value, empty when unset.
type ServiceFactory func(rootOverride string) (*Services, error)

var (
	sessionService  driving.SessionService
	fileService     driving.FileService
	deckService     driving.DeckService
	noteService     driving.NoteService
	importService   driving.ImportService
	backupService   driving.BackupService
	settingsService driving.SettingsService
	storageWatcher  driven.StorageWatcher
	rootPath        string

	factory ServiceFactory
)

// Global flags.
var (
	verbose    bool
	rootFlag   string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "Study sessions, notes and flashcards from the terminal",
	Long: `Sprout organises study material into sessions. Each session is a
directory holding attached files, rich-text notes and flashcard decks.

Data lives under <Documents>/Sprout unless --root, SPROUT_ROOT or the
storage.root setting point elsewhere.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Data directory (overrides SPROUT_ROOT and storage.root)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
}

// Execute runs the command tree.
func Execute(ctx context.Context, v string, f ServiceFactory) error {
	version = v
	factory = f
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if factory == nil {
		return nil
	}
	s, err := factory(rootFlag)
	if err != nil {
		return err
	}
	useServices(s)
	return nil
}

func useServices(s *Services) {
	rootPath = s.Root
	sessionService = s.Session
	fileService = s.File
	deckService = s.Deck
	noteService = s.Note
	importService = s.Import
	backupService = s.Backup
	settingsService = s.Settings
	storageWatcher = s.Watcher
}

// resolveSession maps a session name, directory or path to its directory.
func resolveSession(ctx context.Context, ref string) (*domain.Session, error) {
	if sessionService == nil {
		return nil, errors.New("session service not configured")
	}
	return sessionService.Resolve(ctx, ref)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
