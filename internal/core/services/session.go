package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService manages study sessions.
type SessionService struct {
	sessions driven.SessionStore
	decks    driven.DeckStore
	paths    driven.PathResolver
}

// NewSessionService creates a new session service.
// decks is optional; when set, resolved sessions carry their decks.
func NewSessionService(
	sessions driven.SessionStore,
	decks driven.DeckStore,
	paths driven.PathResolver,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		decks:    decks,
		paths:    paths,
	}
}

// List returns all sessions.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sessions.List(ctx)
}

// Resolve finds a session by absolute path, directory name or display name.
// Display names match case-insensitively.
func (s *SessionService) Resolve(ctx context.Context, ref string) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrNoSession
	}

	session, err := s.lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if s.decks != nil {
		decks, err := s.decks.List(ctx, session.FullPath)
		if err != nil {
			return nil, err
		}
		session.Decks = decks
	}
	return session, nil
}

func (s *SessionService) lookup(ctx context.Context, ref string) (*domain.Session, error) {
	if filepath.IsAbs(ref) {
		return s.sessions.Get(ctx, filepath.Clean(ref))
	}

	if s.paths != nil {
		if dir := domain.SanitizeName(ref); dir != "" {
			session, err := s.sessions.Get(ctx, filepath.Join(s.paths.Root(), dir))
			if err == nil {
				return session, nil
			}
		}
	}

	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if strings.EqualFold(sessions[i].Name, ref) ||
			strings.EqualFold(filepath.Base(sessions[i].FullPath), ref) {
			return &sessions[i], nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

// Create makes a new session from a name and a list of source files.
func (s *SessionService) Create(ctx context.Context, name string, files []string) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if domain.SanitizeName(name) == "" {
		return nil, domain.ErrInvalidName
	}

	exists, err := s.sessions.NameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSessionNameExists
	}

	draft := domain.SessionDraft{Name: name}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		draft.Files = append(draft.Files, domain.FileRef{SourcePath: abs, Name: filepath.Base(abs)})
	}
	return s.sessions.Save(ctx, draft)
}

// Save creates or overwrites a session. Collisions between different
// display names are not checked.
func (s *SessionService) Save(ctx context.Context, draft domain.SessionDraft) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := validateStruct(draft); err != nil {
		return nil, err
	}
	return s.sessions.Save(ctx, draft)
}

// Merge shallow-merges fields into a session's descriptor.
func (s *SessionService) Merge(ctx context.Context, sessionPath string, fields map[string]any) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	if sessionPath == "" {
		return nil, domain.ErrNoSession
	}
	return s.sessions.Merge(ctx, sessionPath, fields)
}

// NameExists reports whether name is taken by a session other than excludePath.
func (s *SessionService) NameExists(ctx context.Context, name, excludePath string) (bool, error) {
	if s.sessions == nil {
		return false, domain.ErrNotImplemented
	}
	return s.sessions.NameExists(ctx, name, excludePath)
}

// Rename renames a session and returns its new location.
func (s *SessionService) Rename(ctx context.Context, sessionPath, newName string) (*domain.SessionRename, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sessions.Rename(ctx, sessionPath, strings.TrimSpace(newName))
}

// Delete permanently removes a session.
func (s *SessionService) Delete(ctx context.Context, sessionPath string) error {
	if s.sessions == nil {
		return domain.ErrNotImplemented
	}
	return s.sessions.Delete(ctx, sessionPath)
}

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService manages session attachments.
type FileService struct {
	files driven.FileStore
}

// NewFileService creates a new file service.
func NewFileService(files driven.FileStore) *FileService {
	return &FileService{files: files}
}

// Add copies files into a session. Relative sources are made absolute.
func (s *FileService) Add(ctx context.Context, sessionPath string, sources []string) (*domain.AddFilesResult, error) {
	if s.files == nil {
		return nil, domain.ErrNotImplemented
	}
	if len(sources) == 0 {
		return nil, domain.ErrInvalidInput
	}
	abs := make([]string, 0, len(sources))
	for _, src := range sources {
		p, err := filepath.Abs(src)
		if err != nil {
			return nil, err
		}
		abs = append(abs, p)
	}
	return s.files.Add(ctx, sessionPath, abs)
}

// Delete removes an attachment by relative path or file name.
func (s *FileService) Delete(ctx context.Context, sessionPath, fileRef string) (string, error) {
	if s.files == nil {
		return "", domain.ErrNotImplemented
	}
	if strings.TrimSpace(fileRef) == "" {
		return "", domain.ErrInvalidInput
	}
	return s.files.Delete(ctx, sessionPath, fileRef)
}
