package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps one directory per session under the root.
type SessionStore struct {
	paths driven.PathResolver
}

// NewSessionStore creates a session store rooted at paths.Root().
func NewSessionStore(paths driven.PathResolver) *SessionStore {
	return &SessionStore{paths: paths}
}

// List returns every session with a readable descriptor.
// LastModified is the descriptor's modification time.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	entries, err := os.ReadDir(s.paths.Root())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Session{}, nil
		}
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(s.paths.Root(), e.Name())
		session, err := s.load(dir)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				logger.Error("skipping session %s: %v", e.Name(), err)
			}
			continue
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

// Get loads the session stored at sessionPath.
func (s *SessionStore) Get(_ context.Context, sessionPath string) (*domain.Session, error) {
	return s.load(sessionPath)
}

func (s *SessionStore) load(dir string) (*domain.Session, error) {
	info, err := os.Stat(descriptorPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	rec, err := readDescriptor(dir)
	if err != nil {
		return nil, err
	}
	session := rec.toDomain(dir)
	session.LastModified = info.ModTime()
	return session, nil
}

// Save creates the session directory if needed, copies referenced source
// files into their category folders and overwrites session.json.
// A file that fails to copy is recorded by its bare name.
func (s *SessionStore) Save(_ context.Context, draft domain.SessionDraft) (*domain.Session, error) {
	dirName := domain.SanitizeName(draft.Name)
	if dirName == "" {
		return nil, domain.ErrInvalidName
	}
	dir := filepath.Join(s.paths.Root(), dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	existing, err := readDescriptor(dir)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		logger.Warn("replacing unreadable descriptor in %s: %v", dirName, err)
	}
	if existing != nil && existing.UUID != "" && draft.UUID != "" && existing.UUID != draft.UUID {
		return nil, domain.ErrSessionNameExists
	}

	now := time.Now()
	rec := &sessionRecord{
		ID:           draft.ID,
		UUID:         draft.UUID,
		Name:         draft.Name,
		CreatedAt:    draft.CreatedAt,
		LastModified: now,
	}
	if existing != nil {
		if rec.ID == 0 {
			rec.ID = existing.ID
		}
		if rec.UUID == "" {
			rec.UUID = existing.UUID
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = existing.CreatedAt
		}
	}
	if rec.ID == 0 {
		rec.ID = now.UnixMilli()
	}
	if rec.UUID == "" {
		rec.UUID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	rec.Files = make([]string, 0, len(draft.Files))
	seen := make(map[string]bool, len(draft.Files))
	for _, ref := range draft.Files {
		rel := storedFileName(dir, ref)
		if rel == "" || seen[rel] {
			continue
		}
		seen[rel] = true
		rec.Files = append(rec.Files, rel)
	}

	if err := writeDescriptor(dir, rec); err != nil {
		return nil, err
	}
	return rec.toDomain(dir), nil
}

// storedFileName copies ref into dir when it points outside the session
// and returns the path to record.
func storedFileName(dir string, ref domain.FileRef) string {
	if !ref.NeedsCopy() {
		if ref.RelPath != "" {
			return ref.RelPath
		}
		return ref.Name
	}
	rel := domain.RelativeFilePath(ref.Name)
	if err := copyFile(ref.SourcePath, filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
		logger.Error("copy %s: %v", ref.SourcePath, err)
		return filepath.Base(ref.Name)
	}
	return rel
}

// NameExists reports whether name sanitizes to an existing session
// directory, compared case-insensitively. The directory of excludePath
// never counts.
func (s *SessionStore) NameExists(_ context.Context, name, excludePath string) (bool, error) {
	dirName := domain.SanitizeName(name)
	if dirName == "" {
		return false, nil
	}
	if excludePath != "" && strings.EqualFold(filepath.Base(excludePath), dirName) {
		return false, nil
	}
	_, ok := findDirFold(s.paths.Root(), dirName)
	return ok, nil
}

// Rename moves the session directory to the sanitized new name and rewrites
// the descriptor. If the rewrite fails the move is kept and a
// *domain.PartialFailureError is returned together with the new path.
func (s *SessionStore) Rename(_ context.Context, oldPath, newName string) (*domain.SessionRename, error) {
	dirName := domain.SanitizeName(newName)
	if dirName == "" {
		return nil, domain.ErrInvalidName
	}
	oldPath = filepath.Clean(oldPath)
	if !s.owns(oldPath) || !dirExists(oldPath) {
		return nil, domain.ErrSessionNotFound
	}

	newPath := filepath.Join(s.paths.Root(), dirName)
	if target, ok := findDirFold(s.paths.Root(), dirName); ok && !strings.EqualFold(target, oldPath) {
		return nil, domain.ErrSessionNameExists
	}

	rec, err := readDescriptor(oldPath)
	if err != nil {
		return nil, fmt.Errorf("read session descriptor: %v", err)
	}

	if oldPath != newPath {
		if err := os.Rename(oldPath, newPath); err != nil {
			return nil, err
		}
	}

	rec.Name = newName
	rec.LastModified = time.Now()
	if err := writeDescriptor(newPath, rec); err != nil {
		return &domain.SessionRename{NewPath: newPath}, &domain.PartialFailureError{
			Op:        "rename session",
			Completed: []string{"move directory to " + newPath},
			Pending:   []string{"rewrite " + domain.SessionDescriptorFile},
			Err:       err,
		}
	}

	session, err := s.load(newPath)
	if err != nil {
		session = rec.toDomain(newPath)
	}
	return &domain.SessionRename{NewPath: newPath, Session: session}, nil
}

// Delete removes the session directory and everything in it.
func (s *SessionStore) Delete(_ context.Context, sessionPath string) error {
	if !s.owns(sessionPath) || !dirExists(sessionPath) {
		return domain.ErrSessionNotFound
	}
	return os.RemoveAll(sessionPath)
}

// Merge overlays fields on the stored descriptor. Keys not in fields,
// including files, keep their stored values. lastModified is always stamped.
func (s *SessionStore) Merge(_ context.Context, sessionPath string, fields map[string]any) (*domain.Session, error) {
	if !dirExists(sessionPath) {
		return nil, domain.ErrSessionNotFound
	}
	stored, _, err := readRawDescriptor(sessionPath)
	if err != nil {
		logger.Warn("replacing unreadable descriptor in %s: %v", filepath.Base(sessionPath), err)
		stored = make(map[string]json.RawMessage)
	}

	for key, value := range fields {
		if key == "fullPath" {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", domain.ErrInvalidInput, key, err)
		}
		stored[key] = raw
	}
	stamp, err := json.Marshal(time.Now())
	if err != nil {
		return nil, err
	}
	stored["lastModified"] = stamp

	// Reject values that would make the descriptor unreadable.
	encoded, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	var check sessionRecord
	if err := json.Unmarshal(encoded, &check); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := writeJSON(descriptorPath(sessionPath), stored); err != nil {
		return nil, err
	}
	return s.load(sessionPath)
}

// Touch stamps lastModified on the descriptor if it exists.
func (s *SessionStore) Touch(_ context.Context, sessionPath string) error {
	return touchDescriptor(sessionPath, time.Now())
}

// owns reports whether path is a direct child of the root.
func (s *SessionStore) owns(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == filepath.Clean(s.paths.Root())
}
