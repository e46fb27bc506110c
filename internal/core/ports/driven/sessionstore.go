package driven

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// SessionStore persists session directories and their session.json descriptors.
// Sessions are addressed by their absolute directory path.
type SessionStore interface {
	// List returns every session under the root. Directories without a
	// readable descriptor are skipped.
	List(ctx context.Context) ([]domain.Session, error)

	// Get loads a single session.
	Get(ctx context.Context, sessionPath string) (*domain.Session, error)

	// Save creates or overwrites the session named by draft.Name, copying
	// any referenced source files into it. It does not check name collisions
	// between unrelated display names.
	Save(ctx context.Context, draft domain.SessionDraft) (*domain.Session, error)

	// NameExists reports whether name sanitizes to an existing directory,
	// ignoring the directory of excludePath.
	NameExists(ctx context.Context, name, excludePath string) (bool, error)

	// Rename moves the session directory and rewrites its descriptor.
	Rename(ctx context.Context, oldPath, newName string) (*domain.SessionRename, error)

	// Delete removes the session directory recursively.
	Delete(ctx context.Context, sessionPath string) error

	// Merge shallow-merges fields over the stored descriptor.
	// The files list is kept unless fields supplies one.
	Merge(ctx context.Context, sessionPath string, fields map[string]any) (*domain.Session, error)

	// Touch stamps lastModified on an existing descriptor.
	Touch(ctx context.Context, sessionPath string) error
}

// FileStore copies attachments into a session's category folders.
type FileStore interface {
	// Add copies the source files into the session and records them.
	Add(ctx context.Context, sessionPath string, sources []string) (*domain.AddFilesResult, error)

	// Delete removes a file by stored relative path or bare file name and
	// returns the relative path that was removed.
	Delete(ctx context.Context, sessionPath, fileRef string) (string, error)
}
