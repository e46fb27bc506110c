package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore keeps a session's note document in appunti.json.
type NoteStore struct{}

// NewNoteStore creates a new note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// SaveNamed writes content verbatim to a file in the session directory.
func (s *NoteStore) SaveNamed(_ context.Context, sessionPath, fileName string, content []byte) (string, error) {
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("%w: file name required", domain.ErrInvalidInput)
	}
	if filepath.Ext(name) == "" {
		name += ".txt"
	}
	if !dirExists(sessionPath) {
		return "", domain.ErrSessionNotFound
	}
	target := filepath.Join(sessionPath, name)
	if err := os.WriteFile(target, content, 0644); err != nil {
		return "", err
	}
	return target, nil
}

// AutoSave writes the note document and stamps the session descriptor.
// A failure to stamp the descriptor is logged, not returned.
func (s *NoteStore) AutoSave(_ context.Context, sessionPath string, content []byte) (time.Time, error) {
	if !dirExists(sessionPath) {
		return time.Time{}, domain.ErrSessionNotFound
	}
	if err := os.WriteFile(filepath.Join(sessionPath, domain.NoteFileName), content, 0644); err != nil {
		return time.Time{}, err
	}
	now := time.Now()
	if err := touchDescriptor(sessionPath, now); err != nil {
		logger.Warn("touch descriptor of %s: %v", filepath.Base(sessionPath), err)
	}
	return now, nil
}

// Load returns the stored document. A legacy plain-text note is converted
// once: the JSON document is written and the text file renamed with a
// .backup suffix. Without any note an empty document is returned.
func (s *NoteStore) Load(_ context.Context, sessionPath string) (*domain.NoteLoad, error) {
	data, err := os.ReadFile(filepath.Join(sessionPath, domain.NoteFileName))
	if err == nil {
		if !json.Valid(data) {
			return nil, domain.ErrInvalidJSON
		}
		return &domain.NoteLoad{Document: data}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	legacyPath := filepath.Join(sessionPath, domain.LegacyNoteFileName)
	text, err := os.ReadFile(legacyPath)
	if errors.Is(err, os.ErrNotExist) {
		return &domain.NoteLoad{Document: domain.EmptyNoteDocument()}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.migrate(sessionPath, legacyPath, string(text))
}

func (s *NoteStore) migrate(sessionPath, legacyPath, text string) (*domain.NoteLoad, error) {
	doc, err := json.Marshal(domain.NoteFromPlainText(text))
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(sessionPath, domain.NoteFileName), doc, 0644); err != nil {
		return nil, err
	}
	if err := os.Rename(legacyPath, legacyPath+domain.LegacyBackupSuffix); err != nil {
		logger.Warn("keep legacy note %s: %v", legacyPath, err)
	}
	logger.Info("migrated legacy notes in %s", filepath.Base(sessionPath))
	return &domain.NoteLoad{Document: doc, Migrated: true}, nil
}
