// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDecks lists the session's decks.
	ViewDecks ViewType = iota
	// ViewStudy shows one deck's cards one at a time.
	ViewStudy
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDecks:
		return "decks"
	case ViewStudy:
		return "study"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DecksLoaded carries the session's decks back to the model.
type DecksLoaded struct {
	Decks []domain.Deck
	Err   error
}

// DeckSelected is sent when a deck is chosen for study.
type DeckSelected struct {
	Deck domain.Deck
}

// CardReviewed carries the outcome of a status change.
type CardReviewed struct {
	Deck string
	Card *domain.Flashcard
	Err  error
}

// ErrorOccurred reports an error to display.
type ErrorOccurred struct {
	Err error
}

// Quit requests application exit.
type Quit struct{}
