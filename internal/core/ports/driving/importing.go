package driving

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// ImportService parses flashcard files and imports the drafts into decks.
type ImportService interface {
	// Parse converts an import file into drafts. format overrides detection.
	Parse(ctx context.Context, fileName string, content []byte, format string, opts domain.ParseOptions) (*domain.ParseResult, error)

	// Import assigns drafts to decks and persists them.
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error)

	// History returns past imports, newest first.
	History(ctx context.Context, limit int) ([]domain.ImportRecord, error)

	// Formats returns the supported format keys.
	Formats() []string
}
