// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PathResolver: Locates and creates the root storage directory
//   - SessionStore: Session directory and descriptor persistence
//   - FileStore: Attachment copies inside a session
//   - DeckStore: Flashcard deck persistence
//   - NoteStore: Rich-text note persistence
//   - FlashcardParser: Turns an import file into card drafts
//   - ParserRegistry: Selects the parser for an import file
//   - Archiver: Backup archive creation and extraction
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImportHistoryStore: Import history. Without it, imports are not recorded.
//   - NoteRenderer: HTML rendering. Without it, only Markdown export is available.
//   - StorageWatcher: Change notifications for the root directory.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or importer package
package driven
