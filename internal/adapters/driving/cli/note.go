package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Read and write session notes",
}

var noteShowCmd = &cobra.Command{
	Use:   "show [session]",
	Short: "Print the session's notes",
	Long: `Print the note document. Legacy plain-text notes are converted on
first load and the original is kept with a .backup suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteShow,
}

var noteSaveCmd = &cobra.Command{
	Use:   "save [session] [file-name]",
	Short: "Write text from stdin or --from to a named file",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteSave,
}

var noteAutoSaveCmd = &cobra.Command{
	Use:   "autosave [session]",
	Short: "Replace the note document with JSON from stdin or --from",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteAutoSave,
}

var noteExportCmd = &cobra.Command{
	Use:   "export [session] [file-name]",
	Short: "Export notes as Markdown or HTML",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteExport,
}

var (
	noteFrom     string
	noteMarkdown bool
	noteFormat   string
)

func init() {
	noteShowCmd.Flags().BoolVar(&noteMarkdown, "markdown", false, "Render as Markdown instead of JSON")
	noteSaveCmd.Flags().StringVar(&noteFrom, "from", "", "Read content from this file instead of stdin")
	noteAutoSaveCmd.Flags().StringVar(&noteFrom, "from", "", "Read the document from this file instead of stdin")
	noteExportCmd.Flags().StringVarP(&noteFormat, "format", "f", domain.ExportMarkdown, "Export format (md or html)")

	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteSaveCmd)
	noteCmd.AddCommand(noteAutoSaveCmd)
	noteCmd.AddCommand(noteExportCmd)
	rootCmd.AddCommand(noteCmd)
}

// noteSession resolves the session argument shared by every note command.
func noteSession(cmd *cobra.Command, ref string) (string, error) {
	if noteService == nil {
		return "", errors.New("note service not configured")
	}
	session, err := resolveSession(cmd.Context(), ref)
	if err != nil {
		return "", err
	}
	return session.FullPath, nil
}

// readInput reads --from when set, else the command's stdin.
func readInput(cmd *cobra.Command) ([]byte, error) {
	if noteFrom != "" {
		return os.ReadFile(noteFrom)
	}
	return io.ReadAll(cmd.InOrStdin())
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	sessionPath, err := noteSession(cmd, args[0])
	if err != nil {
		return err
	}

	loaded, err := noteService.Load(cmd.Context(), sessionPath)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	if loaded.Migrated {
		cmd.PrintErrln("Converted legacy notes to the current format.")
	}

	if noteMarkdown {
		doc, err := domain.ParseNoteDocument(loaded.Document)
		if err != nil {
			return err
		}
		cmd.Print(doc.Markdown())
		return nil
	}
	cmd.Println(string(loaded.Document))
	return nil
}

func runNoteSave(cmd *cobra.Command, args []string) error {
	sessionPath, err := noteSession(cmd, args[0])
	if err != nil {
		return err
	}
	content, err := readInput(cmd)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	path, err := noteService.SaveNamed(cmd.Context(), sessionPath, args[1], string(content))
	if err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	cmd.Printf("Saved %s\n", path)
	return nil
}

func runNoteAutoSave(cmd *cobra.Command, args []string) error {
	sessionPath, err := noteSession(cmd, args[0])
	if err != nil {
		return err
	}
	content, err := readInput(cmd)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if _, err := domain.ParseNoteDocument(content); err != nil {
		return err
	}

	stamp, err := noteService.AutoSave(cmd.Context(), sessionPath, string(content))
	if err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	cmd.Printf("Saved at %s\n", stamp)
	return nil
}

func runNoteExport(cmd *cobra.Command, args []string) error {
	sessionPath, err := noteSession(cmd, args[0])
	if err != nil {
		return err
	}

	path, err := noteService.Export(cmd.Context(), sessionPath, args[1], noteFormat)
	if err != nil {
		return fmt.Errorf("failed to export notes: %w", err)
	}
	cmd.Printf("Exported %s\n", path)
	return nil
}
