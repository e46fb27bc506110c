package driven

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// ImportHistoryStore records completed flashcard imports.
// Backed by SQLite.
type ImportHistoryStore interface {
	// Record appends an entry.
	Record(ctx context.Context, rec domain.ImportRecord) error

	// List returns the newest entries first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.ImportRecord, error)
}
