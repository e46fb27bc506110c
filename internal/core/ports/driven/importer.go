package driven

import "github.com/custodia-labs/sprout-cli/internal/core/domain"

// FlashcardParser turns the bytes of an import file into card drafts.
// Row-level problems are reported in the result; only unreadable input
// returns an error.
type FlashcardParser interface {
	// Format returns the key used for explicit format overrides.
	Format() string

	// Extensions returns the file extensions handled, with leading dot.
	Extensions() []string

	// Parse converts content into drafts.
	Parse(content []byte, opts domain.ParseOptions) (*domain.ParseResult, error)
}

// ParserRegistry selects the parser for an import file.
type ParserRegistry interface {
	// Register adds a parser to the registry.
	Register(parser FlashcardParser)

	// Resolve returns the parser for format if set, else by the extension
	// of fileName. Returns domain.ErrUnsupportedFormat if neither matches.
	Resolve(fileName, format string) (FlashcardParser, error)

	// Formats returns the registered format keys.
	Formats() []string
}
