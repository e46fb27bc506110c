// Package domain defines the core business entities for Sprout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: A study space with attached files and notes
//   - Deck: A named set of flashcards inside a session
//   - NoteNode: The rich-text note document tree
//   - FlashcardDraft: A parsed card awaiting import
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
