package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingDeckService,
		ErrInvalidPorts,
		ErrNoSession,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingDeckService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingDeckService.Error(), "deck service")
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (*Ports)(nil).Validate(), ErrInvalidPorts)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingDeckService)
	assert.NoError(t, NewPorts(&mockDeckService{}).Validate())
}
