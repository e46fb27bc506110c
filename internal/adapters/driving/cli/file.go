package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage session attachments",
	Long: `Copy files into a session or remove them. Files are stored under
images/, documents/ or others/ according to their extension.`,
}

var fileAddCmd = &cobra.Command{
	Use:   "add [session] [files...]",
	Short: "Copy files into a session",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFileAdd,
}

var fileDeleteCmd = &cobra.Command{
	Use:   "delete [session] [file]",
	Short: "Remove a file by relative path or name",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileDelete,
}

func init() {
	fileCmd.AddCommand(fileAddCmd)
	fileCmd.AddCommand(fileDeleteCmd)
	rootCmd.AddCommand(fileCmd)
}

func runFileAdd(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result, err := fileService.Add(cmd.Context(), session.FullPath, args[1:])
	if err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Added: %d\n", result.Added)
	cmd.Printf("Duplicates: %d\n", result.Duplicates)
	for _, f := range result.Failed {
		cmd.Printf("Failed: %s\n", f)
	}
	return nil
}

func runFileDelete(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	removed, err := fileService.Delete(cmd.Context(), session.FullPath, args[1])
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	cmd.Printf("Removed %s\n", removed)
	return nil
}

// fileRef turns a command-line path into a reference to copy in.
func fileRef(path string) domain.FileRef {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return domain.FileRef{SourcePath: abs, Name: filepath.Base(abs)}
}
