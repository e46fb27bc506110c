package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ensure NoteService implements the interface.
var _ driving.NoteService = (*NoteService)(nil)

// AutoSaveTimeLayout formats the timestamp returned by AutoSave.
const AutoSaveTimeLayout = "02/01/2006, 15:04:05"

// NoteService manages a session's notes.
type NoteService struct {
	notes    driven.NoteStore
	renderer driven.NoteRenderer
}

// NewNoteService creates a new note service. renderer is only needed for
// HTML export.
func NewNoteService(notes driven.NoteStore, renderer driven.NoteRenderer) *NoteService {
	return &NoteService{notes: notes, renderer: renderer}
}

// SaveNamed writes text verbatim to a named file in the session.
func (s *NoteService) SaveNamed(ctx context.Context, sessionPath, fileName, content string) (string, error) {
	if s.notes == nil {
		return "", domain.ErrNotImplemented
	}
	if strings.TrimSpace(fileName) == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	return s.notes.SaveNamed(ctx, sessionPath, fileName, []byte(content))
}

// AutoSave stores the note document and returns the save time formatted
// with AutoSaveTimeLayout.
func (s *NoteService) AutoSave(ctx context.Context, sessionPath string, content any) (string, error) {
	if s.notes == nil {
		return "", domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return "", domain.ErrNoSession
	}

	var data []byte
	switch v := content.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		data = encoded
	}

	saved, err := s.notes.AutoSave(ctx, sessionPath, data)
	if err != nil {
		return "", err
	}
	return saved.Format(AutoSaveTimeLayout), nil
}

// Load returns the note document.
func (s *NoteService) Load(ctx context.Context, sessionPath string) (*domain.NoteLoad, error) {
	if s.notes == nil {
		return nil, domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return nil, domain.ErrNoSession
	}
	return s.notes.Load(ctx, sessionPath)
}

// Export renders the notes as Markdown or HTML and writes them to fileName.
// A name without extension gets the format's extension.
func (s *NoteService) Export(ctx context.Context, sessionPath, fileName, format string) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != domain.ExportMarkdown && format != domain.ExportHTML {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	loaded, err := s.Load(ctx, sessionPath)
	if err != nil {
		return "", err
	}
	doc, err := domain.ParseNoteDocument(loaded.Document)
	if err != nil {
		return "", err
	}
	out := []byte(doc.Markdown())

	if format == domain.ExportHTML {
		if s.renderer == nil {
			return "", domain.ErrNotImplemented
		}
		if out, err = s.renderer.RenderHTML(out); err != nil {
			return "", fmt.Errorf("render notes: %w", err)
		}
	}

	if filepath.Ext(fileName) == "" {
		fileName += "." + format
	}
	return s.notes.SaveNamed(ctx, sessionPath, fileName, out)
}
