package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// BackupFileLayout names archives written into a destination directory.
const BackupFileLayout = "sprout_backup_2006-01-02_150405.zip"

// SettingsTransfer moves settings in and out of a backup.
type SettingsTransfer interface {
	Export() ([]byte, error)
	Import(data []byte) error
}

// BackupService archives and restores the root directory and settings.
type BackupService struct {
	archiver driven.Archiver
	paths    driven.PathResolver
	settings SettingsTransfer
	now      func() time.Time
}

// NewBackupService creates a new backup service. settings is optional;
// without it backups carry no settings entry.
func NewBackupService(archiver driven.Archiver, paths driven.PathResolver, settings SettingsTransfer) *BackupService {
	return &BackupService{
		archiver: archiver,
		paths:    paths,
		settings: settings,
		now:      time.Now,
	}
}

// Create writes the root directory and settings to dest. When dest is an
// existing directory the archive gets a timestamped name inside it.
func (s *BackupService) Create(ctx context.Context, dest string) (*domain.BackupResult, error) {
	if s.archiver == nil || s.paths == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(dest) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, s.now().Format(BackupFileLayout))
	}

	var blob []byte
	if s.settings != nil {
		var err error
		if blob, err = s.settings.Export(); err != nil {
			return nil, fmt.Errorf("export settings: %w", err)
		}
	}

	if err := s.paths.EnsureRoot(); err != nil {
		return nil, err
	}
	count, err := s.archiver.Create(ctx, s.paths.Root(), dest, blob)
	if err != nil {
		return nil, err
	}
	return &domain.BackupResult{Path: dest, Files: count}, nil
}

// Restore replaces all data with the archive's contents, then applies the
// archived settings.
func (s *BackupService) Restore(ctx context.Context, archivePath string) (*domain.RestoreResult, error) {
	if s.archiver == nil || s.paths == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(archivePath) == "" {
		return nil, fmt.Errorf("%w: archive path is required", domain.ErrInvalidInput)
	}

	blob, count, err := s.archiver.Restore(ctx, archivePath, s.paths.Root())
	if err != nil {
		return nil, err
	}
	result := &domain.RestoreResult{Files: count}
	if blob == nil || s.settings == nil {
		return result, nil
	}

	if err := s.settings.Import(blob); err != nil {
		return result, &domain.PartialFailureError{
			Op:        "restore backup",
			Completed: []string{"remove existing data", "extract archive"},
			Pending:   []string{"apply settings"},
			Err:       err,
		}
	}
	result.SettingsRestored = true
	return result, nil
}
