// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the deck list.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens a deck.
	Select key.Binding

	// Flip reveals or hides the answer.
	Flip key.Binding

	// Next moves to the following card.
	Next key.Binding

	// Prev moves to the previous card.
	Prev key.Binding

	// MarkNew resets a card to new.
	MarkNew key.Binding

	// MarkReview marks a card for another pass.
	MarkReview key.Binding

	// MarkConsolidated marks a card as learned.
	MarkConsolidated key.Binding

	// Pending limits the study queue to cards not yet consolidated.
	Pending key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "study"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "flip"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", "prev"),
		),
		MarkNew: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "new"),
		),
		MarkReview: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "review"),
		),
		MarkConsolidated: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "consolidated"),
		),
		Pending: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "pending only"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// StudyHelp returns keybindings for the study view.
func (k *KeyMap) StudyHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Next, k.MarkReview, k.MarkConsolidated, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Flip, k.Next, k.Prev, k.Pending},
		{k.MarkNew, k.MarkReview, k.MarkConsolidated},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
