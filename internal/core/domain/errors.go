package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Session Errors.

	// ErrSessionNotFound indicates the session directory does not exist.
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

	// ErrSessionNameExists indicates another session already uses the sanitized name.
	ErrSessionNameExists = fmt.Errorf("session name %w", ErrAlreadyExists)

	// ErrInvalidName indicates a name that sanitizes to an empty string.
	ErrInvalidName = fmt.Errorf("%w: name is empty after sanitization", ErrInvalidInput)

	// ErrFileNotFoundInSession indicates a file reference matches no stored entry.
	ErrFileNotFoundInSession = fmt.Errorf("file %w in session", ErrNotFound)

	// Deck Errors.

	// ErrDeckNotFound indicates the deck directory does not exist.
	ErrDeckNotFound = fmt.Errorf("deck %w", ErrNotFound)

	// ErrDeckNameExists indicates the deck directory name is already taken.
	ErrDeckNameExists = fmt.Errorf("deck name %w", ErrAlreadyExists)

	// ErrDuplicateName indicates a deck with the same trimmed name is already in the session.
	ErrDuplicateName = fmt.Errorf("duplicate deck name: %w", ErrAlreadyExists)

	// ErrCardNotFound indicates no card with the given id exists in the deck.
	ErrCardNotFound = fmt.Errorf("card %w", ErrNotFound)

	// Import Errors.

	// ErrNoSession indicates an import was requested without a target session.
	ErrNoSession = fmt.Errorf("%w: no session selected", ErrInvalidInput)

	// ErrNoCards indicates an import was requested with nothing to import.
	ErrNoCards = fmt.Errorf("%w: no cards to import", ErrInvalidInput)

	// ErrDeckNotSelected indicates neither a target deck nor a new deck name was given.
	ErrDeckNotSelected = fmt.Errorf("%w: no deck selected", ErrInvalidInput)

	// ErrUnsupportedFormat indicates no import adapter handles the file.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidJSON indicates an import file that is not valid JSON.
	ErrInvalidJSON = fmt.Errorf("%w: invalid JSON", ErrInvalidInput)
)

// Error codes returned at the boundary in place of messages.
const (
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeSessionNameExists     = "SESSION_NAME_EXISTS"
	CodeInvalidName           = "INVALID_NAME"
	CodeFileNotFoundInSession = "FILE_NOT_FOUND_IN_SESSION"
	CodeDeckNotFound          = "DECK_NOT_FOUND"
	CodeDeckNameExists        = "DECK_NAME_EXISTS"
	CodeDuplicateName         = "DUPLICATE_NAME"
	CodeCardNotFound          = "CARD_NOT_FOUND"
	CodeNoSession             = "NO_SESSION"
	CodeNoCards               = "NO_CARDS"
	CodeDeckNotSelected       = "DECK_NOT_SELECTED"
	CodeUnsupportedFormat     = "UNSUPPORTED_FORMAT"
	CodeInvalidJSON           = "INVALID_JSON"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeIO                    = "IO_ERROR"
)

// errorCodes is ordered most specific first: several sentinels wrap
// ErrInvalidInput, ErrNotFound or ErrAlreadyExists.
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrSessionNotFound, CodeSessionNotFound},
	{ErrSessionNameExists, CodeSessionNameExists},
	{ErrInvalidName, CodeInvalidName},
	{ErrFileNotFoundInSession, CodeFileNotFoundInSession},
	{ErrDeckNotFound, CodeDeckNotFound},
	{ErrDeckNameExists, CodeDeckNameExists},
	{ErrDuplicateName, CodeDuplicateName},
	{ErrCardNotFound, CodeCardNotFound},
	{ErrNoSession, CodeNoSession},
	{ErrNoCards, CodeNoCards},
	{ErrDeckNotSelected, CodeDeckNotSelected},
	{ErrUnsupportedFormat, CodeUnsupportedFormat},
	{ErrInvalidJSON, CodeInvalidJSON},
	{ErrInvalidInput, CodeInvalidInput},
}

// ErrorCode returns the stable boundary code for err.
// Errors outside the domain taxonomy map to CodeIO; nil maps to "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeIO
}

// PartialFailureError reports a multi-step operation that stopped after some
// steps had already been applied. Applied steps are not rolled back.
type PartialFailureError struct {
	// Op names the operation (e.g. "rename session").
	Op string

	// Completed lists the steps that took effect.
	Completed []string

	// Pending lists the steps that did not run or failed.
	Pending []string

	// Err is the failure that interrupted the operation.
	Err error
}

// Error implements error.
func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially applied (done: %s; not done: %s): %v",
		e.Op, strings.Join(e.Completed, ", "), strings.Join(e.Pending, ", "), e.Err)
}

// Unwrap returns the interrupting error.
func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
