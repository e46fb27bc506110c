// Package importers provides the flashcard import parsers and the registry
// that picks one for an uploaded file.
//
// Each parser turns raw file bytes into domain.FlashcardDraft values plus
// per-row issues. Parsers are registered with the Registry at startup and
// selected by explicit format key or by file extension.
package importers
