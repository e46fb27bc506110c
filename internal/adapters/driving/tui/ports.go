// Package tui provides the interactive flashcard study interface.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI calls into.
type Ports struct {
	// Deck loads decks and records review outcomes.
	Deck driving.DeckService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(deck driving.DeckService) *Ports {
	return &Ports{Deck: deck}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Deck == nil {
		return ErrMissingDeckService
	}
	return nil
}
