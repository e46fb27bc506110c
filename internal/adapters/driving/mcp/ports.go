package mcp

import (
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session lists, saves, renames and deletes sessions.
	Session driving.SessionService

	// File manages session attachments.
	File driving.FileService

	// Deck manages flashcard decks.
	Deck driving.DeckService

	// Note loads and saves session notes.
	Note driving.NoteService

	// Import parses and imports flashcard files.
	Import driving.ImportService

	// Backup creates and restores archives.
	Backup driving.BackupService
}

// Validate ensures all required ports are set.
// Every tool resolves its session first, so Session is mandatory; tools whose
// port is nil report a failure instead.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
