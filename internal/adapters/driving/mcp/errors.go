// Package mcp provides an MCP (Model Context Protocol) server adapter for Sprout.
// It lets AI assistants read and edit study sessions, flashcard decks and notes.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrServiceUnavailable is reported by tools whose port was not wired.
var ErrServiceUnavailable = errors.New("service not configured")
