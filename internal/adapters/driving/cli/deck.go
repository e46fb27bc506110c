package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

var deckCmd = &cobra.Command{
	Use:     "deck",
	Aliases: []string{"decks"},
	Short:   "Manage flashcard decks",
	Long:    `Create, rename and delete decks and edit the cards inside them.`,
}

var deckListCmd = &cobra.Command{
	Use:   "list [session]",
	Short: "List a session's decks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckList,
}

var deckShowCmd = &cobra.Command{
	Use:   "show [session] [deck]",
	Short: "Show a deck's cards",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeckShow,
}

var deckCreateCmd = &cobra.Command{
	Use:   "create [session] [name]",
	Short: "Create an empty deck",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeckCreate,
}

var deckRenameCmd = &cobra.Command{
	Use:   "rename [session] [deck] [new-name]",
	Short: "Rename a deck",
	Args:  cobra.ExactArgs(3),
	RunE:  runDeckRename,
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete [session] [deck]",
	Short: "Delete a deck and its cards",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeckDelete,
}

var deckAddCardCmd = &cobra.Command{
	Use:   "add-card [session] [deck] [question] [answer]",
	Short: "Add a card to a deck",
	Args:  cobra.ExactArgs(4),
	RunE:  runDeckAddCard,
}

var deckEditCardCmd = &cobra.Command{
	Use:   "edit-card [session] [deck] [card-id] [question] [answer]",
	Short: "Replace a card's question and answer",
	Args:  cobra.ExactArgs(5),
	RunE:  runDeckEditCard,
}

var deckDeleteCardCmd = &cobra.Command{
	Use:   "delete-card [session] [deck] [card-id]",
	Short: "Remove a card from a deck",
	Args:  cobra.ExactArgs(3),
	RunE:  runDeckDeleteCard,
}

var deckStatusCmd = &cobra.Command{
	Use:   "status [session] [deck] [card-id] [new|review|consolidated]",
	Short: "Set a card's study status",
	Args:  cobra.ExactArgs(4),
	RunE:  runDeckStatus,
}

func init() {
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckRenameCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	deckCmd.AddCommand(deckAddCardCmd)
	deckCmd.AddCommand(deckEditCardCmd)
	deckCmd.AddCommand(deckDeleteCardCmd)
	deckCmd.AddCommand(deckStatusCmd)
	rootCmd.AddCommand(deckCmd)
}

// deckSession resolves the session argument shared by every deck command.
func deckSession(cmd *cobra.Command, ref string) (string, error) {
	if deckService == nil {
		return "", errors.New("deck service not configured")
	}
	session, err := resolveSession(cmd.Context(), ref)
	if err != nil {
		return "", err
	}
	return session.FullPath, nil
}

func runDeckList(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	decks, err := deckService.List(cmd.Context(), sessionPath)
	if err != nil {
		return fmt.Errorf("failed to load decks: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, decks)
	}
	if len(decks) == 0 {
		cmd.Println("No decks found.")
		return nil
	}

	for i := range decks {
		counts := decks[i].StatusCounts()
		cmd.Printf("  %s\n", decks[i].Name)
		cmd.Printf("    Cards: %d (new %d, review %d, consolidated %d)\n",
			len(decks[i].Cards), counts[domain.StatusNew], counts[domain.StatusReview], counts[domain.StatusConsolidated])
	}
	cmd.Printf("\nTotal: %d decks\n", len(decks))
	return nil
}

func runDeckShow(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	deck, err := deckService.Get(cmd.Context(), sessionPath, args[1])
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, deck)
	}
	cmd.Printf("Deck: %s\n\n", deck.Name)
	if len(deck.Cards) == 0 {
		cmd.Println("No cards.")
		return nil
	}
	for i := range deck.Cards {
		c := deck.Cards[i]
		cmd.Printf("  [%d] %s\n", c.ID, c.Question)
		cmd.Printf("      %s\n", c.Answer)
		cmd.Printf("      Status: %s\n", c.Status)
	}
	return nil
}

func runDeckCreate(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	deck, err := deckService.Create(cmd.Context(), sessionPath, args[1])
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}
	cmd.Printf("Created deck %q\n", deck.Name)
	return nil
}

func runDeckRename(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	deck, err := deckService.Rename(cmd.Context(), sessionPath, args[1], args[2])
	if err != nil {
		return fmt.Errorf("failed to rename deck: %w", err)
	}
	cmd.Printf("Renamed deck %q to %q\n", args[1], deck.Name)
	return nil
}

func runDeckDelete(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	if err := deckService.Delete(cmd.Context(), sessionPath, args[1]); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	cmd.Printf("Deleted deck %q\n", args[1])
	return nil
}

func runDeckAddCard(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}

	card, err := deckService.AddCard(cmd.Context(), sessionPath, args[1], args[2], args[3])
	if err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}
	cmd.Printf("Added card %d\n", card.ID)
	return nil
}

func runDeckEditCard(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}
	id, err := parseCardID(args[2])
	if err != nil {
		return err
	}

	card, err := deckService.UpdateCard(cmd.Context(), sessionPath, args[1], id, args[3], args[4])
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	cmd.Printf("Updated card %d\n", card.ID)
	return nil
}

func runDeckDeleteCard(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}
	id, err := parseCardID(args[2])
	if err != nil {
		return err
	}

	if err := deckService.DeleteCard(cmd.Context(), sessionPath, args[1], id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	cmd.Printf("Deleted card %d\n", id)
	return nil
}

func runDeckStatus(cmd *cobra.Command, args []string) error {
	sessionPath, err := deckSession(cmd, args[0])
	if err != nil {
		return err
	}
	id, err := parseCardID(args[2])
	if err != nil {
		return err
	}

	card, err := deckService.SetCardStatus(cmd.Context(), sessionPath, args[1], id, domain.CardStatus(args[3]))
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	cmd.Printf("Card %d is now %s\n", card.ID, card.Status)
	return nil
}

func parseCardID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: card id must be a number", domain.ErrInvalidInput)
	}
	return id, nil
}
