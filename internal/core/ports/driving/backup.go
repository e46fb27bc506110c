package driving

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// BackupService archives and restores all data.
type BackupService interface {
	// Create writes the root directory and settings to dest.
	Create(ctx context.Context, dest string) (*domain.BackupResult, error)

	// Restore replaces all data with the archive's contents.
	// Existing data is removed before extraction.
	Restore(ctx context.Context, archivePath string) (*domain.RestoreResult, error)
}
