package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Manage study sessions",
	Long:    `List, create, rename and delete study sessions.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session]",
	Short: "Show a session with its files and decks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create [name] [files...]",
	Short: "Create a session",
	Long:  `Create a session, copying any given files into it. Fails if the name is taken.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionCreate,
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save [name] [files...]",
	Short: "Create or overwrite a session",
	Long: `Write a session descriptor without checking for a name collision.
An existing session with the same directory keeps its id and creation time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSessionSave,
}

var sessionSetCmd = &cobra.Command{
	Use:   "set [session] [key=value...]",
	Short: "Merge fields into a session descriptor",
	Long: `Merge top-level fields into session.json. Values are parsed as JSON
when possible and stored as strings otherwise.

Example:
  sprout session set Biologia name="Biologia II"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSessionSet,
}

var sessionExistsCmd = &cobra.Command{
	Use:   "exists [name]",
	Short: "Check whether a session name is taken",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionExists,
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename [session] [new-name]",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionRename,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session]",
	Short: "Delete a session permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var (
	sessionRecent  bool
	sessionExclude string
)

func init() {
	sessionListCmd.Flags().BoolVar(&sessionRecent, "recent", false, "Sort by last modification, newest first")
	sessionExistsCmd.Flags().StringVar(&sessionExclude, "exclude", "", "Session path to ignore (for in-place renames)")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionExistsCmd)
	sessionCmd.AddCommand(sessionRenameCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sessions, err := sessionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if sessionRecent {
		sort.SliceStable(sessions, func(i, j int) bool {
			return sessions[i].LastModified.After(sessions[j].LastModified)
		})
	} else {
		sort.SliceStable(sessions, func(i, j int) bool {
			return strings.ToLower(sessions[i].Name) < strings.ToLower(sessions[j].Name)
		})
	}

	if outputJSON {
		return printJSON(cmd, sessions)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions found.")
		return nil
	}

	cmd.Println("Sessions:")
	cmd.Println()
	for i := range sessions {
		cmd.Printf("  %s\n", sessions[i].Name)
		cmd.Printf("    Path: %s\n", sessions[i].FullPath)
		cmd.Printf("    Files: %d\n", len(sessions[i].Files))
		cmd.Printf("    Modified: %s\n", sessions[i].LastModified.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	cmd.Printf("Total: %d sessions\n", len(sessions))
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, session)
	}

	cmd.Printf("Session: %s\n", session.Name)
	cmd.Printf("  Path: %s\n", session.FullPath)
	if session.UUID != "" {
		cmd.Printf("  UUID: %s\n", session.UUID)
	}
	cmd.Printf("  Created: %s\n", session.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("  Modified: %s\n", session.LastModified.Format("2006-01-02 15:04"))

	cmd.Printf("\nFiles (%d):\n", len(session.Files))
	for _, f := range session.Files {
		cmd.Printf("  %s\n", f)
	}

	cmd.Printf("\nDecks (%d):\n", len(session.Decks))
	for i := range session.Decks {
		cmd.Printf("  %s (%d cards)\n", session.Decks[i].Name, len(session.Decks[i].Cards))
	}
	return nil
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Create(cmd.Context(), args[0], args[1:])
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, session)
	}
	cmd.Printf("Created session %q at %s\n", session.Name, session.FullPath)
	if len(session.Files) > 0 {
		cmd.Printf("Files: %s\n", strings.Join(session.Files, ", "))
	}
	return nil
}

func runSessionSave(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	draft := domain.SessionDraft{Name: args[0]}
	for _, f := range args[1:] {
		draft.Files = append(draft.Files, fileRef(f))
	}

	session, err := sessionService.Save(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, session)
	}
	cmd.Printf("Saved session %q at %s\n", session.Name, session.FullPath)
	return nil
}

func runSessionSet(cmd *cobra.Command, args []string) error {
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(args)-1)
	for _, arg := range args[1:] {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, arg)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		fields[key] = value
	}

	updated, err := sessionService.Merge(cmd.Context(), session.FullPath, fields)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, updated)
	}
	cmd.Printf("Updated session %q\n", updated.Name)
	return nil
}

func runSessionExists(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	exists, err := sessionService.NameExists(cmd.Context(), args[0], sessionExclude)
	if err != nil {
		return fmt.Errorf("failed to check session name: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, map[string]bool{"exists": exists})
	}
	if exists {
		cmd.Printf("Session name %q is taken\n", args[0])
	} else {
		cmd.Printf("Session name %q is available\n", args[0])
	}
	return nil
}

func runSessionRename(cmd *cobra.Command, args []string) error {
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renamed, err := sessionService.Rename(cmd.Context(), session.FullPath, args[1])
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, renamed)
	}
	cmd.Printf("Renamed session %q to %q\n", session.Name, strings.TrimSpace(args[1]))
	cmd.Printf("New path: %s\n", renamed.NewPath)
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	session, err := resolveSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := sessionService.Delete(cmd.Context(), session.FullPath); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	cmd.Printf("Deleted session %q\n", session.Name)
	return nil
}
