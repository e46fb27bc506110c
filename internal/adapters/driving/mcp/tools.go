package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Every tool reports failures in its output rather than as a protocol error:
// success is false, error carries the stable code and message the text.

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	s.registerSessionTools()
	s.registerDeckTools()
	s.registerNoteTools()
	s.registerBackupTools()
	s.registerImportTools()
}

// failure converts err into the error code and message of a tool output.
func failure(tool string, err error) (code, message string) {
	logger.Debug("mcp: %s: %v", tool, err)
	return domain.ErrorCode(err), err.Error()
}

func unavailable(service string) error {
	return fmt.Errorf("%s %w", service, ErrServiceUnavailable)
}

// resolveSession finds the session a tool operates on.
func (s *Server) resolveSession(ctx context.Context, ref string) (*domain.Session, error) {
	return s.ports.Session.Resolve(ctx, ref)
}

// GetSessionsInput is the input schema for get_sessions.
type GetSessionsInput struct{}

// GetSessionsOutput is the output schema for get_sessions.
type GetSessionsOutput struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
	Message  string          `json:"message,omitempty"`
	Sessions []SessionOutput `json:"sessions"`
}

// SaveSessionInput is the input schema for save_session.
type SaveSessionInput struct {
	Name  string           `json:"name" jsonschema:"display name of the session"`
	Files []domain.FileRef `json:"files,omitempty" jsonschema:"files to record; path+name copies a file in, relPath keeps a stored one"`
	ID    int64            `json:"id,omitempty" jsonschema:"existing session id to keep"`
	UUID  string           `json:"uuid,omitempty" jsonschema:"existing session uuid to keep"`
}

// SessionResultOutput is the output schema for tools returning one session.
type SessionResultOutput struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
	Session *SessionOutput `json:"session,omitempty"`
}

// SaveSessionDataInput is the input schema for save_session_data.
type SaveSessionDataInput struct {
	Session string         `json:"session" jsonschema:"session name, directory name or path"`
	Fields  map[string]any `json:"fields" jsonschema:"descriptor fields to merge into session.json"`
}

// CheckSessionNameInput is the input schema for check_session_name_exists.
type CheckSessionNameInput struct {
	Name    string `json:"name" jsonschema:"candidate session name"`
	Exclude string `json:"exclude,omitempty" jsonschema:"session path to ignore, e.g. the one being renamed"`
}

// CheckSessionNameOutput is the output schema for check_session_name_exists.
type CheckSessionNameOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Exists  bool   `json:"exists"`
}

// RenameSessionInput is the input schema for rename_session.
type RenameSessionInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
	NewName string `json:"newName" jsonschema:"new display name"`
}

// RenameSessionOutput is the output schema for rename_session.
type RenameSessionOutput struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
	NewPath string         `json:"newPath,omitempty"`
	Session *SessionOutput `json:"session,omitempty"`
}

// SessionRefInput is the input schema for tools taking only a session.
type SessionRefInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
}

// StatusOutput is the output schema for tools with no payload.
type StatusOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// AddFilesInput is the input schema for add_files_to_session.
type AddFilesInput struct {
	Session string   `json:"session" jsonschema:"session name, directory name or path"`
	Paths   []string `json:"paths" jsonschema:"absolute paths of the files to copy in"`
}

// AddFilesOutput is the output schema for add_files_to_session.
type AddFilesOutput struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	Message    string   `json:"message,omitempty"`
	Added      int      `json:"added"`
	Duplicates int      `json:"duplicates"`
	Failed     []string `json:"failed,omitempty"`
	Files      []string `json:"files,omitempty"`
}

// DeleteFileInput is the input schema for delete_file.
type DeleteFileInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
	File    string `json:"file" jsonschema:"relative path (images/a.png) or file name"`
}

// DeleteFileOutput is the output schema for delete_file.
type DeleteFileOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Removed string `json:"removed,omitempty"`
}

func (s *Server) registerSessionTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_sessions",
		Description: "List all study sessions, newest first",
	}, s.handleGetSessions)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_session",
		Description: "Create or overwrite a study session without a name collision check",
	}, s.handleSaveSession)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_session_data",
		Description: "Merge fields into a session descriptor",
	}, s.handleSaveSessionData)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_session_name_exists",
		Description: "Check whether a session name is already taken",
	}, s.handleCheckSessionName)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_session",
		Description: "Rename a study session and move its directory",
	}, s.handleRenameSession)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_session",
		Description: "Permanently delete a study session with its notes, files and decks",
	}, s.handleDeleteSession)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_files_to_session",
		Description: "Copy files into a session; duplicates are skipped",
	}, s.handleAddFiles)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_file",
		Description: "Remove an attached file from a session",
	}, s.handleDeleteFile)
}

func (s *Server) handleGetSessions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetSessionsInput,
) (*mcp.CallToolResult, GetSessionsOutput, error) {
	sessions, err := s.ports.Session.List(ctx)
	if err != nil {
		out := GetSessionsOutput{Sessions: []SessionOutput{}}
		out.Error, out.Message = failure("get_sessions", err)
		return nil, out, nil
	}

	out := GetSessionsOutput{Success: true, Sessions: make([]SessionOutput, len(sessions))}
	for i := range sessions {
		out.Sessions[i] = toSessionOutput(&sessions[i])
	}
	return nil, out, nil
}

func (s *Server) handleSaveSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveSessionInput,
) (*mcp.CallToolResult, SessionResultOutput, error) {
	var out SessionResultOutput
	session, err := s.ports.Session.Save(ctx, domain.SessionDraft{
		ID:    input.ID,
		UUID:  input.UUID,
		Name:  input.Name,
		Files: input.Files,
	})
	if err != nil {
		out.Error, out.Message = failure("save_session", err)
		return nil, out, nil
	}
	so := toSessionOutput(session)
	out.Success, out.Session = true, &so
	return nil, out, nil
}

func (s *Server) handleSaveSessionData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveSessionDataInput,
) (*mcp.CallToolResult, SessionResultOutput, error) {
	var out SessionResultOutput
	session, err := s.resolveSession(ctx, input.Session)
	if err == nil {
		session, err = s.ports.Session.Merge(ctx, session.FullPath, input.Fields)
	}
	if err != nil {
		out.Error, out.Message = failure("save_session_data", err)
		return nil, out, nil
	}
	so := toSessionOutput(session)
	out.Success, out.Session = true, &so
	return nil, out, nil
}

func (s *Server) handleCheckSessionName(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckSessionNameInput,
) (*mcp.CallToolResult, CheckSessionNameOutput, error) {
	var out CheckSessionNameOutput
	exists, err := s.ports.Session.NameExists(ctx, input.Name, input.Exclude)
	if err != nil {
		out.Error, out.Message = failure("check_session_name_exists", err)
		return nil, out, nil
	}
	out.Success, out.Exists = true, exists
	return nil, out, nil
}

func (s *Server) handleRenameSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenameSessionInput,
) (*mcp.CallToolResult, RenameSessionOutput, error) {
	var out RenameSessionOutput
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("rename_session", err)
		return nil, out, nil
	}
	renamed, err := s.ports.Session.Rename(ctx, session.FullPath, input.NewName)
	if err != nil {
		out.Error, out.Message = failure("rename_session", err)
		return nil, out, nil
	}
	out.Success, out.NewPath = true, renamed.NewPath
	if renamed.Session != nil {
		so := toSessionOutput(renamed.Session)
		out.Session = &so
	}
	return nil, out, nil
}

func (s *Server) handleDeleteSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionRefInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	var out StatusOutput
	session, err := s.resolveSession(ctx, input.Session)
	if err == nil {
		err = s.ports.Session.Delete(ctx, session.FullPath)
	}
	if err != nil {
		out.Error, out.Message = failure("delete_session", err)
		return nil, out, nil
	}
	out.Success = true
	return nil, out, nil
}

func (s *Server) handleAddFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddFilesInput,
) (*mcp.CallToolResult, AddFilesOutput, error) {
	var out AddFilesOutput
	if s.ports.File == nil {
		out.Error, out.Message = failure("add_files_to_session", unavailable("file"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("add_files_to_session", err)
		return nil, out, nil
	}
	res, err := s.ports.File.Add(ctx, session.FullPath, input.Paths)
	if err != nil {
		out.Error, out.Message = failure("add_files_to_session", err)
		return nil, out, nil
	}
	out.Success = true
	out.Added, out.Duplicates = res.Added, res.Duplicates
	out.Failed, out.Files = res.Failed, res.Files
	return nil, out, nil
}

func (s *Server) handleDeleteFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteFileInput,
) (*mcp.CallToolResult, DeleteFileOutput, error) {
	var out DeleteFileOutput
	if s.ports.File == nil {
		out.Error, out.Message = failure("delete_file", unavailable("file"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("delete_file", err)
		return nil, out, nil
	}
	removed, err := s.ports.File.Delete(ctx, session.FullPath, input.File)
	if err != nil {
		out.Error, out.Message = failure("delete_file", err)
		return nil, out, nil
	}
	out.Success, out.Removed = true, removed
	return nil, out, nil
}

// SaveDeckInput is the input schema for save_deck.
type SaveDeckInput struct {
	Session string       `json:"session" jsonschema:"session name, directory name or path"`
	Name    string       `json:"name" jsonschema:"deck name"`
	Cards   []CardOutput `json:"cards,omitempty" jsonschema:"the full card list; it replaces the stored one"`
	ID      int64        `json:"id,omitempty" jsonschema:"deck id to keep"`
	UUID    string       `json:"uuid,omitempty" jsonschema:"deck uuid to keep"`
}

// DeckResultOutput is the output schema for tools returning one deck.
type DeckResultOutput struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Deck    *DeckOutput `json:"deck,omitempty"`
}

// LoadDecksOutput is the output schema for load_decks.
type LoadDecksOutput struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Decks   []DeckOutput `json:"decks"`
}

// DeckRefInput is the input schema for delete_deck.
type DeckRefInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
	Deck    string `json:"deck" jsonschema:"deck name"`
}

// RenameDeckInput is the input schema for rename_deck.
type RenameDeckInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
	Deck    string `json:"deck" jsonschema:"current deck name"`
	NewName string `json:"newName" jsonschema:"new deck name"`
}

func (s *Server) registerDeckTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_deck",
		Description: "Write a deck with its full card list, creating it when missing",
	}, s.handleSaveDeck)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_decks",
		Description: "List the flashcard decks of a session",
	}, s.handleLoadDecks)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_deck",
		Description: "Delete a deck and all its cards",
	}, s.handleDeleteDeck)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_deck",
		Description: "Rename a flashcard deck",
	}, s.handleRenameDeck)
}

func (s *Server) handleSaveDeck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveDeckInput,
) (*mcp.CallToolResult, DeckResultOutput, error) {
	var out DeckResultOutput
	if s.ports.Deck == nil {
		out.Error, out.Message = failure("save_deck", unavailable("deck"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("save_deck", err)
		return nil, out, nil
	}

	deck := &domain.Deck{
		ID:    input.ID,
		UUID:  input.UUID,
		Name:  input.Name,
		Cards: toFlashcards(input.Cards),
	}
	if err := s.ports.Deck.Save(ctx, session.FullPath, deck); err != nil {
		out.Error, out.Message = failure("save_deck", err)
		return nil, out, nil
	}

	saved, err := s.ports.Deck.Get(ctx, session.FullPath, deck.Name)
	if err != nil {
		saved = deck
	}
	do := toDeckOutput(saved)
	out.Success, out.Deck = true, &do
	return nil, out, nil
}

func (s *Server) handleLoadDecks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionRefInput,
) (*mcp.CallToolResult, LoadDecksOutput, error) {
	out := LoadDecksOutput{Decks: []DeckOutput{}}
	if s.ports.Deck == nil {
		out.Error, out.Message = failure("load_decks", unavailable("deck"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("load_decks", err)
		return nil, out, nil
	}
	decks, err := s.ports.Deck.List(ctx, session.FullPath)
	if err != nil {
		out.Error, out.Message = failure("load_decks", err)
		return nil, out, nil
	}
	out.Success, out.Decks = true, toDeckOutputs(decks)
	return nil, out, nil
}

func (s *Server) handleDeleteDeck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeckRefInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	var out StatusOutput
	if s.ports.Deck == nil {
		out.Error, out.Message = failure("delete_deck", unavailable("deck"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err == nil {
		err = s.ports.Deck.Delete(ctx, session.FullPath, input.Deck)
	}
	if err != nil {
		out.Error, out.Message = failure("delete_deck", err)
		return nil, out, nil
	}
	out.Success = true
	return nil, out, nil
}

func (s *Server) handleRenameDeck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenameDeckInput,
) (*mcp.CallToolResult, DeckResultOutput, error) {
	var out DeckResultOutput
	if s.ports.Deck == nil {
		out.Error, out.Message = failure("rename_deck", unavailable("deck"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("rename_deck", err)
		return nil, out, nil
	}
	deck, err := s.ports.Deck.Rename(ctx, session.FullPath, input.Deck, input.NewName)
	if err != nil {
		out.Error, out.Message = failure("rename_deck", err)
		return nil, out, nil
	}
	do := toDeckOutput(deck)
	out.Success, out.Deck = true, &do
	return nil, out, nil
}

// SaveNoteInput is the input schema for save_note.
type SaveNoteInput struct {
	Session  string `json:"session" jsonschema:"session name, directory name or path"`
	FileName string `json:"fileName" jsonschema:"name of the file to write inside the session"`
	Content  string `json:"content" jsonschema:"text to write verbatim"`
}

// SaveNoteOutput is the output schema for save_note.
type SaveNoteOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// AutoSaveNotesInput is the input schema for auto_save_notes.
type AutoSaveNotesInput struct {
	Session string `json:"session" jsonschema:"session name, directory name or path"`
	Content any    `json:"content" jsonschema:"the rich-text note document"`
}

// AutoSaveNotesOutput is the output schema for auto_save_notes.
type AutoSaveNotesOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	SavedAt string `json:"savedAt,omitempty"`
}

// LoadNotesOutput is the output schema for load_notes.
type LoadNotesOutput struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
	Document any    `json:"document,omitempty"`
	Migrated bool   `json:"migrated"`
}

func (s *Server) registerNoteTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_note",
		Description: "Write text to a named file inside a session",
	}, s.handleSaveNote)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "auto_save_notes",
		Description: "Store the session's rich-text note document",
	}, s.handleAutoSaveNotes)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_notes",
		Description: "Load the session's note document, migrating legacy plain-text notes",
	}, s.handleLoadNotes)
}

func (s *Server) handleSaveNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveNoteInput,
) (*mcp.CallToolResult, SaveNoteOutput, error) {
	var out SaveNoteOutput
	if s.ports.Note == nil {
		out.Error, out.Message = failure("save_note", unavailable("note"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("save_note", err)
		return nil, out, nil
	}
	path, err := s.ports.Note.SaveNamed(ctx, session.FullPath, input.FileName, input.Content)
	if err != nil {
		out.Error, out.Message = failure("save_note", err)
		return nil, out, nil
	}
	out.Success, out.Path = true, path
	return nil, out, nil
}

func (s *Server) handleAutoSaveNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AutoSaveNotesInput,
) (*mcp.CallToolResult, AutoSaveNotesOutput, error) {
	var out AutoSaveNotesOutput
	if s.ports.Note == nil {
		out.Error, out.Message = failure("auto_save_notes", unavailable("note"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("auto_save_notes", err)
		return nil, out, nil
	}
	savedAt, err := s.ports.Note.AutoSave(ctx, session.FullPath, input.Content)
	if err != nil {
		out.Error, out.Message = failure("auto_save_notes", err)
		return nil, out, nil
	}
	out.Success, out.SavedAt = true, savedAt
	return nil, out, nil
}

func (s *Server) handleLoadNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionRefInput,
) (*mcp.CallToolResult, LoadNotesOutput, error) {
	var out LoadNotesOutput
	if s.ports.Note == nil {
		out.Error, out.Message = failure("load_notes", unavailable("note"))
		return nil, out, nil
	}
	session, err := s.resolveSession(ctx, input.Session)
	if err != nil {
		out.Error, out.Message = failure("load_notes", err)
		return nil, out, nil
	}
	loaded, err := s.ports.Note.Load(ctx, session.FullPath)
	if err != nil {
		out.Error, out.Message = failure("load_notes", err)
		return nil, out, nil
	}
	out.Success = true
	out.Document, out.Migrated = decodeDocument(loaded.Document), loaded.Migrated
	return nil, out, nil
}

// CreateBackupInput is the input schema for create_backup.
type CreateBackupInput struct {
	Destination string `json:"destination" jsonschema:"archive path or an existing directory to write into"`
}

// CreateBackupOutput is the output schema for create_backup.
type CreateBackupOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
	Files   int    `json:"files"`
}

// RestoreBackupInput is the input schema for restore_backup.
type RestoreBackupInput struct {
	Archive string `json:"archive" jsonschema:"path of the backup archive"`
	Confirm bool   `json:"confirm" jsonschema:"must be true: restoring deletes all current data"`
}

// RestoreBackupOutput is the output schema for restore_backup.
type RestoreBackupOutput struct {
	Success          bool   `json:"success"`
	Error            string `json:"error,omitempty"`
	Message          string `json:"message,omitempty"`
	Files            int    `json:"files"`
	SettingsRestored bool   `json:"settingsRestored"`
}

func (s *Server) registerBackupTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_backup",
		Description: "Archive all sessions and settings into a zip file",
	}, s.handleCreateBackup)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "restore_backup",
		Description: "Replace all data with the contents of a backup archive",
	}, s.handleRestoreBackup)
}

func (s *Server) handleCreateBackup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateBackupInput,
) (*mcp.CallToolResult, CreateBackupOutput, error) {
	var out CreateBackupOutput
	if s.ports.Backup == nil {
		out.Error, out.Message = failure("create_backup", unavailable("backup"))
		return nil, out, nil
	}
	res, err := s.ports.Backup.Create(ctx, input.Destination)
	if err != nil {
		out.Error, out.Message = failure("create_backup", err)
		return nil, out, nil
	}
	out.Success, out.Path, out.Files = true, res.Path, res.Files
	return nil, out, nil
}

func (s *Server) handleRestoreBackup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RestoreBackupInput,
) (*mcp.CallToolResult, RestoreBackupOutput, error) {
	var out RestoreBackupOutput
	if s.ports.Backup == nil {
		out.Error, out.Message = failure("restore_backup", unavailable("backup"))
		return nil, out, nil
	}
	if !input.Confirm {
		err := fmt.Errorf("%w: restore deletes all current data; set confirm to true", domain.ErrInvalidInput)
		out.Error, out.Message = failure("restore_backup", err)
		return nil, out, nil
	}
	res, err := s.ports.Backup.Restore(ctx, input.Archive)
	if err != nil {
		out.Error, out.Message = failure("restore_backup", err)
		return nil, out, nil
	}
	out.Success = true
	out.Files, out.SettingsRestored = res.Files, res.SettingsRestored
	return nil, out, nil
}
