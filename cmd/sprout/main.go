// Package main is the sprout composition root: it builds the adapters and
// services and hands them to the command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/archive"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/services"
	"github.com/custodia-labs/sprout-cli/internal/importers"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// envRoot overrides the data directory when --root is not given.
const envRoot = "SPROUT_ROOT"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var history *sqlite.Store
	defer func() {
		if history != nil {
			if err := history.Close(); err != nil {
				logger.Warn("closing import history: %v", err)
			}
		}
	}()

	factory := func(rootOverride string) (*cli.Services, error) {
		configStore, err := file.NewConfigStore("")
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		settings := services.NewSettingsService(configStore)

		root, err := resolveRoot(rootOverride, settings)
		if err != nil {
			return nil, err
		}
		paths, err := filesystem.NewPathResolver(root)
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		if err := paths.EnsureRoot(); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		logger.Debug("data directory: %s", paths.Root())

		history, err = sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("opening import history: %w", err)
		}

		decks := filesystem.NewDeckStore()
		return &cli.Services{
			Root:     paths.Root(),
			Session:  services.NewSessionService(filesystem.NewSessionStore(paths), decks, paths),
			File:     services.NewFileService(filesystem.NewFileStore()),
			Deck:     services.NewDeckService(decks),
			Note:     services.NewNoteService(filesystem.NewNoteStore(), render.NewHTML()),
			Import:   services.NewImportService(importers.DefaultRegistry(), decks, history),
			Backup:   services.NewBackupService(archive.New(), paths, settings),
			Settings: settings,
			Watcher:  watcher.New(watcher.DefaultDebounce),
		}, nil
	}

	if err := cli.Execute(ctx, version, factory); err != nil {
		if code := domain.ErrorCode(err); code != domain.CodeIO {
			fmt.Fprintf(os.Stderr, "Error: %v (%s)\n", err, code)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// resolveRoot picks the data directory: --root, then SPROUT_ROOT, then the
// storage.root setting. Empty means the default <Documents>/Sprout.
func resolveRoot(flag string, settings *services.SettingsService) (string, error) {
	if flag = strings.TrimSpace(flag); flag != "" {
		return flag, nil
	}
	if env := strings.TrimSpace(os.Getenv(envRoot)); env != "" {
		return env, nil
	}
	current, err := settings.Get()
	if err != nil {
		return "", fmt.Errorf("reading settings: %w", err)
	}
	return current.Storage.Root, nil
}
