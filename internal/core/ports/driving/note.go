package driving

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// NoteService manages a session's notes.
type NoteService interface {
	// SaveNamed writes text to a named file in the session.
	SaveNamed(ctx context.Context, sessionPath, fileName, content string) (string, error)

	// AutoSave stores the note document and returns a display timestamp.
	// Strings and raw JSON are written verbatim; other values are encoded as JSON.
	AutoSave(ctx context.Context, sessionPath string, content any) (string, error)

	// Load returns the note document.
	Load(ctx context.Context, sessionPath string) (*domain.NoteLoad, error)

	// Export renders the notes as Markdown or HTML into a named file.
	Export(ctx context.Context, sessionPath, fileName, format string) (string, error)
}
