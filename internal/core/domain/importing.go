package domain

import "time"

// Import formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FlashcardDraft is a parsed card that has not been persisted yet.
// Deck is empty when the source row names no deck. Status is the raw
// source value; it is normalised when the card is imported.
type FlashcardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Deck     string `json:"deck,omitempty"`
	Status   string `json:"status"`
}

// ParseIssue is a row or item that could not become a draft.
type ParseIssue struct {
	// Line is the 1-based line (CSV) or item (JSON) number; 0 for structural errors.
	Line int `json:"line"`

	// Message describes the problem.
	Message string `json:"message"`
}

// ParseOptions tune a parser. Zero values mean "detect".
type ParseOptions struct {
	// Delimiter overrides CSV delimiter detection.
	Delimiter rune

	// Quote overrides the CSV quote character (default '"').
	Quote rune
}

// ParseResult is the outcome of parsing one import file.
type ParseResult struct {
	Format string           `json:"format"`
	Cards  []FlashcardDraft `json:"cards"`
	Errors []ParseIssue     `json:"errors"`
}

// ImportRequest describes how parsed drafts are assigned to decks.
type ImportRequest struct {
	// SessionPath is the target session directory.
	SessionPath string

	// Drafts are the cards to import.
	Drafts []FlashcardDraft

	// TargetDeckID selects an existing deck; zero means none.
	TargetDeckID int64

	// NewDeckName creates (or reuses, case-insensitively) a deck as the target.
	NewDeckName string

	// UseDeckField lets each draft's own Deck override the target.
	UseDeckField bool

	// SourceFile and Format are recorded in the import history.
	SourceFile string
	Format     string
}

// ImportResult reports an import.
type ImportResult struct {
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	Decks        int      `json:"decks"`
	CreatedDecks []string `json:"createdDecks,omitempty"`
}

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	ID          string
	SessionName string
	SourceFile  string
	Format      string
	Imported    int
	Skipped     int
	Decks       int
	CreatedAt   time.Time
}
