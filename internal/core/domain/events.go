package domain

// ChangeType represents the type of storage change.
type ChangeType int

const (
	// ChangeCreated indicates a new entry.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified entry.
	ChangeUpdated

	// ChangeDeleted indicates a removed entry.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// EntryKind classifies what a storage path belongs to.
type EntryKind string

// Entry kinds.
const (
	KindSession EntryKind = "session"
	KindDeck    EntryKind = "deck"
	KindNote    EntryKind = "note"
	KindFile    EntryKind = "file"
)

// StorageEvent is a change observed under the root directory.
type StorageEvent struct {
	Type ChangeType

	Kind EntryKind

	// Session is the session directory name the change belongs to.
	Session string

	// Path is the path relative to the session directory.
	Path string
}
