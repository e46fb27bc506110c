package driving

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// SessionService manages study sessions.
type SessionService interface {
	// List returns all sessions.
	List(ctx context.Context) ([]domain.Session, error)

	// Resolve finds a session by display name, directory name or path.
	Resolve(ctx context.Context, ref string) (*domain.Session, error)

	// Create makes a new session, rejecting empty and taken names.
	Create(ctx context.Context, name string, files []string) (*domain.Session, error)

	// Save creates or overwrites a session without a collision check.
	Save(ctx context.Context, draft domain.SessionDraft) (*domain.Session, error)

	// Merge shallow-merges fields into a session's descriptor.
	Merge(ctx context.Context, sessionPath string, fields map[string]any) (*domain.Session, error)

	// NameExists reports whether name is taken by a session other than excludePath.
	NameExists(ctx context.Context, name, excludePath string) (bool, error)

	// Rename renames a session and returns its new location.
	Rename(ctx context.Context, sessionPath, newName string) (*domain.SessionRename, error)

	// Delete permanently removes a session.
	Delete(ctx context.Context, sessionPath string) error
}

// FileService manages session attachments.
type FileService interface {
	// Add copies files into a session.
	Add(ctx context.Context, sessionPath string, sources []string) (*domain.AddFilesResult, error)

	// Delete removes an attachment by relative path or file name.
	Delete(ctx context.Context, sessionPath, fileRef string) (string, error)
}
