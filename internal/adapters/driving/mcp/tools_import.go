package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// ParseFlashcardsInput is the input schema for parse_flashcards.
type ParseFlashcardsInput struct {
	Path      string `json:"path,omitempty" jsonschema:"file to parse; used when content is empty"`
	FileName  string `json:"fileName,omitempty" jsonschema:"file name used for format detection when content is given"`
	Content   string `json:"content,omitempty" jsonschema:"file content"`
	Format    string `json:"format,omitempty" jsonschema:"csv or json; detected from the file name when empty"`
	Delimiter string `json:"delimiter,omitempty" jsonschema:"CSV delimiter override; a single character or \\t"`
	Quote     string `json:"quote,omitempty" jsonschema:"CSV quote character override"`
}

// ParseFlashcardsOutput is the output schema for parse_flashcards.
type ParseFlashcardsOutput struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error,omitempty"`
	Message string                  `json:"message,omitempty"`
	Format  string                  `json:"format,omitempty"`
	Cards   []domain.FlashcardDraft `json:"cards"`
	Errors  []domain.ParseIssue     `json:"errors"`
}

// ImportFlashcardsInput is the input schema for import_flashcards.
type ImportFlashcardsInput struct {
	Session      string                  `json:"session" jsonschema:"session name, directory name or path"`
	Cards        []domain.FlashcardDraft `json:"cards" jsonschema:"drafts returned by parse_flashcards"`
	TargetDeckID int64                   `json:"targetDeckId,omitempty" jsonschema:"id of an existing deck"`
	TargetDeck   string                  `json:"targetDeck,omitempty" jsonschema:"name of an existing deck; used when targetDeckId is zero"`
	NewDeckName  string                  `json:"newDeckName,omitempty" jsonschema:"deck to create or reuse as the target"`
	UseDeckField bool                    `json:"useDeckField,omitempty" jsonschema:"let each card's deck field choose its deck"`
	SourceFile   string                  `json:"sourceFile,omitempty" jsonschema:"file name recorded in the import history"`
	Format       string                  `json:"format,omitempty" jsonschema:"format recorded in the import history"`
}

// ImportFlashcardsOutput is the output schema for import_flashcards.
type ImportFlashcardsOutput struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
	Message      string   `json:"message,omitempty"`
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	Decks        int      `json:"decks"`
	CreatedDecks []string `json:"createdDecks,omitempty"`
}

func (s *Server) registerImportTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_flashcards",
		Description: "Parse a CSV or JSON flashcard file into card drafts without saving them",
	}, s.handleParseFlashcards)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_flashcards",
		Description: "Import card drafts into a session's decks",
	}, s.handleImportFlashcards)
}

func (s *Server) handleParseFlashcards(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseFlashcardsInput,
) (*mcp.CallToolResult, ParseFlashcardsOutput, error) {
	out := ParseFlashcardsOutput{Cards: []domain.FlashcardDraft{}, Errors: []domain.ParseIssue{}}
	if s.ports.Import == nil {
		out.Error, out.Message = failure("parse_flashcards", unavailable("import"))
		return nil, out, nil
	}

	name, content, err := importSource(input)
	if err != nil {
		out.Error, out.Message = failure("parse_flashcards", err)
		return nil, out, nil
	}
	opts, err := toParseOptions(input.Delimiter, input.Quote)
	if err != nil {
		out.Error, out.Message = failure("parse_flashcards", err)
		return nil, out, nil
	}

	parsed, err := s.ports.Import.Parse(ctx, name, content, input.Format, opts)
	if err != nil {
		out.Error, out.Message = failure("parse_flashcards", err)
		return nil, out, nil
	}
	out.Success, out.Format = true, parsed.Format
	if parsed.Cards != nil {
		out.Cards = parsed.Cards
	}
	if parsed.Errors != nil {
		out.Errors = parsed.Errors
	}
	return nil, out, nil
}

func (s *Server) handleImportFlashcards(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportFlashcardsInput,
) (*mcp.CallToolResult, ImportFlashcardsOutput, error) {
	var out ImportFlashcardsOutput
	if s.ports.Import == nil {
		out.Error, out.Message = failure("import_flashcards", unavailable("import"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("import_flashcards", err)
		return nil, out, nil
	}

	req := domain.ImportRequest{
		SessionPath:  session.FullPath,
		Drafts:       input.Cards,
		TargetDeckID: input.TargetDeckID,
		NewDeckName:  input.NewDeckName,
		UseDeckField: input.UseDeckField,
		SourceFile:   input.SourceFile,
		Format:       input.Format,
	}
	if req.TargetDeckID == 0 && input.TargetDeck != "" {
		if s.ports.Deck == nil {
			out.Error, out.Message = failure("import_flashcards", unavailable("deck"))
			return nil, out, nil
		}
		deck, err := s.ports.Deck.Get(ctx, session.FullPath, input.TargetDeck)
		if err != nil {
			out.Error, out.Message = failure("import_flashcards", err)
			return nil, out, nil
		}
		req.TargetDeckID = deck.ID
	}

	res, err := s.ports.Import.Import(ctx, req)
	if err != nil {
		out.Error, out.Message = failure("import_flashcards", err)
		return nil, out, nil
	}
	out.Success = true
	out.Imported, out.Skipped = res.Imported, res.Skipped
	out.Decks, out.CreatedDecks = res.Decks, res.CreatedDecks
	return nil, out, nil
}

// importSource returns the file name and bytes to parse: inline content
// when given, otherwise the file at Path.
func importSource(input ParseFlashcardsInput) (string, []byte, error) {
	if input.Content != "" {
		name := input.FileName
		if name == "" {
			name = filepath.Base(input.Path)
		}
		return name, []byte(input.Content), nil
	}
	if input.Path == "" {
		return "", nil, fmt.Errorf("%w: path or content is required", domain.ErrInvalidInput)
	}
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", input.Path, err)
	}
	name := input.FileName
	if name == "" {
		name = filepath.Base(input.Path)
	}
	return name, data, nil
}

func toParseOptions(delimiter, quote string) (domain.ParseOptions, error) {
	var opts domain.ParseOptions
	for _, f := range []struct {
		name  string
		value string
		dst   *rune
	}{
		{"delimiter", delimiter, &opts.Delimiter},
		{"quote", quote, &opts.Quote},
	} {
		if f.value == "" {
			continue
		}
		value := f.value
		if value == `\t` {
			value = "\t"
		}
		if utf8.RuneCountInString(value) != 1 {
			return opts, fmt.Errorf("%w: %s must be a single character", domain.ErrInvalidInput, f.name)
		}
		*f.dst, _ = utf8.DecodeRuneInString(value)
	}
	return opts, nil
}
