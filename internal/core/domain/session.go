package domain

import "time"

// SessionDescriptorFile is the descriptor stored in every session directory.
const SessionDescriptorFile = "session.json"

// Session is a study space: a user-named container for notes, attached
// files and flashcard decks. It maps 1:1 to a directory under the root.
type Session struct {
	// ID is the creation timestamp in milliseconds.
	ID int64

	// UUID is the stable opaque identifier assigned at creation.
	// Unlike the directory name it never changes on rename.
	UUID string

	// Name is the display name. Its sanitized form is the directory name.
	Name string

	// Files holds category-relative paths ("images/a.png"), unique per session.
	Files []string

	// Decks are loaded on demand and never persisted in the descriptor.
	Decks []Deck

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// LastModified is the descriptor's modification time when listed.
	LastModified time.Time

	// FullPath is the absolute session directory. Derived, not persisted.
	FullPath string
}

// DirName returns the directory name derived from the display name.
func (s *Session) DirName() string {
	return SanitizeName(s.Name)
}

// HasFile reports whether rel is already recorded in the session.
func (s *Session) HasFile(rel string) bool {
	for _, f := range s.Files {
		if f == rel {
			return true
		}
	}
	return false
}

// FileRef is an incoming file reference on a session save.
// A reference with both SourcePath and Name is copied into the session;
// a reference with only RelPath is kept as already stored.
type FileRef struct {
	// SourcePath is the absolute path of a file to copy in.
	SourcePath string `json:"path,omitempty"`

	// Name is the destination file name.
	Name string `json:"name,omitempty"`

	// RelPath is an already stored relative path.
	RelPath string `json:"relPath,omitempty"`
}

// NeedsCopy reports whether the reference points at a file outside the session.
func (f FileRef) NeedsCopy() bool {
	return f.SourcePath != "" && f.Name != ""
}

// SessionDraft is the input to a session create or save.
type SessionDraft struct {
	// ID is kept when updating; zero means "assign now".
	ID int64

	// UUID is kept when updating; empty means "assign or inherit".
	UUID string

	// Name is the display name.
	Name string `validate:"required"`

	// Files are the references to record.
	Files []FileRef

	// CreatedAt is kept when updating; zero means "now".
	CreatedAt time.Time
}

// SessionRename is the outcome of a successful rename.
type SessionRename struct {
	// NewPath is the session's new absolute directory.
	NewPath string

	// Session is the rewritten descriptor.
	Session *Session
}
