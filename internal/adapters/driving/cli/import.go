package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [session] [file]",
	Short: "Import flashcards from a CSV or JSON file",
	Long: `Parse a CSV or JSON file into flashcards and add them to decks.

Cards go to the deck named by --deck, or to a deck created with --new-deck.
With --use-deck-field each row's own deck column picks the deck instead,
creating decks as needed; rows without one fall back to --deck/--new-deck
or are skipped.

Examples:
  sprout import Biologia cards.csv --new-deck "Capitolo 1"
  sprout import Biologia export.json --use-deck-field
  sprout import Biologia cards.txt --format csv --delimiter ";" --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

var importHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past imports",
	Args:  cobra.NoArgs,
	RunE:  runImportHistory,
}

var (
	importFormat       string
	importDelimiter    string
	importQuote        string
	importDeck         string
	importNewDeck      string
	importUseDeckField bool
	importDryRun       bool
	importHistoryLimit int
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Force a format instead of detecting it from the extension")
	importCmd.Flags().StringVar(&importDelimiter, "delimiter", "", "CSV delimiter (detected when empty)")
	importCmd.Flags().StringVar(&importQuote, "quote", "", "CSV quote character (default \")")
	importCmd.Flags().StringVar(&importDeck, "deck", "", "Existing deck to import into")
	importCmd.Flags().StringVar(&importNewDeck, "new-deck", "", "Deck to create (or reuse) for the import")
	importCmd.Flags().BoolVar(&importUseDeckField, "use-deck-field", false, "Use each card's deck field to pick its deck")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without importing")
	importHistoryCmd.Flags().IntVarP(&importHistoryLimit, "limit", "n", 20, "Maximum entries to show (0 = all)")

	importCmd.AddCommand(importHistoryCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	opts, err := parseOptions()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	parsed, err := importService.Parse(cmd.Context(), args[1], content, importFormat, opts)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[1], err)
	}

	if !outputJSON || importDryRun {
		printParseResult(cmd, parsed)
	}
	if importDryRun {
		return nil
	}

	req := domain.ImportRequest{
		SessionPath:  session.FullPath,
		Drafts:       parsed.Cards,
		NewDeckName:  importNewDeck,
		UseDeckField: importUseDeckField,
		SourceFile:   filepath.Base(args[1]),
		Format:       parsed.Format,
	}
	if importDeck != "" {
		if deckService == nil {
			return errors.New("deck service not configured")
		}
		deck, err := deckService.Get(cmd.Context(), session.FullPath, importDeck)
		if err != nil {
			return fmt.Errorf("failed to find deck %q: %w", importDeck, err)
		}
		req.TargetDeckID = deck.ID
	}

	result, err := importService.Import(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Imported: %d\n", result.Imported)
	cmd.Printf("Skipped: %d\n", result.Skipped)
	cmd.Printf("Decks: %d\n", result.Decks)
	if len(result.CreatedDecks) > 0 {
		cmd.Printf("Created decks: %s\n", strings.Join(result.CreatedDecks, ", "))
	}
	return nil
}

func parseOptions() (domain.ParseOptions, error) {
	var opts domain.ParseOptions
	for _, f := range []struct {
		name  string
		value string
		dst   *rune
	}{
		{"delimiter", importDelimiter, &opts.Delimiter},
		{"quote", importQuote, &opts.Quote},
	} {
		if f.value == "" {
			continue
		}
		value := f.value
		if value == `\t` {
			value = "\t"
		}
		if utf8.RuneCountInString(value) != 1 {
			return opts, fmt.Errorf("%w: --%s must be a single character", domain.ErrInvalidInput, f.name)
		}
		r, _ := utf8.DecodeRuneInString(value)
		*f.dst = r
	}
	return opts, nil
}

func printParseResult(cmd *cobra.Command, parsed *domain.ParseResult) {
	cmd.Printf("Parsed %d cards (%s)\n", len(parsed.Cards), parsed.Format)
	for _, issue := range parsed.Errors {
		if issue.Line > 0 {
			cmd.Printf("  line %d: %s\n", issue.Line, issue.Message)
		} else {
			cmd.Printf("  %s\n", issue.Message)
		}
	}
}

func runImportHistory(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	records, err := importService.History(cmd.Context(), importHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load import history: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, records)
	}
	if len(records) == 0 {
		cmd.Println("No imports recorded.")
		return nil
	}
	for i := range records {
		r := records[i]
		cmd.Printf("  %s  %s  %s (%s)\n", r.CreatedAt.Format("2006-01-02 15:04"), r.SessionName, r.SourceFile, r.Format)
		cmd.Printf("    imported %d, skipped %d, decks %d\n", r.Imported, r.Skipped, r.Decks)
	}
	return nil
}
