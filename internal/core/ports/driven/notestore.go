package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// NoteStore persists a session's rich-text notes.
type NoteStore interface {
	// SaveNamed writes content verbatim to fileName inside the session and
	// returns the written path. A name without extension gets ".txt".
	SaveNamed(ctx context.Context, sessionPath, fileName string, content []byte) (string, error)

	// AutoSave writes the note document and touches the session descriptor.
	AutoSave(ctx context.Context, sessionPath string, content []byte) (time.Time, error)

	// Load returns the note document, migrating the legacy format once.
	Load(ctx context.Context, sessionPath string) (*domain.NoteLoad, error)
}

// NoteRenderer renders Markdown notes for export.
type NoteRenderer interface {
	// RenderHTML converts Markdown to an HTML fragment.
	RenderHTML(markdown []byte) ([]byte, error)
}
