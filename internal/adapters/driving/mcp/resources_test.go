package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSessionRef(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		suffix   string
		expected string
	}{
		{name: "notes", uri: "sprout://sessions/Biologia/notes", suffix: "/notes", expected: "Biologia"},
		{name: "decks", uri: "sprout://sessions/Biologia/decks", suffix: "/decks", expected: "Biologia"},
		{name: "escaped name", uri: "sprout://sessions/Storia%20moderna/notes", suffix: "/notes", expected: "Storia moderna"},
		{name: "wrong suffix", uri: "sprout://sessions/Biologia/decks", suffix: "/notes", expected: ""},
		{name: "wrong scheme", uri: "other://sessions/Biologia/notes", suffix: "/notes", expected: ""},
		{name: "empty segment", uri: "sprout://sessions//notes", suffix: "/notes", expected: ""},
		{name: "nested segment", uri: "sprout://sessions/a/b/notes", suffix: "/notes", expected: ""},
		{name: "bad escape", uri: "sprout://sessions/%zz/notes", suffix: "/notes", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSessionRef(tt.uri, tt.suffix))
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleSessionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists sessions as json", func(t *testing.T) {
		server, _ := newTestServer(t)
		createSession(t, server, "Biologia")

		result, err := server.handleSessionsResource(ctx, readRequest("sprout://sessions"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var sessions []SessionOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &sessions))
		require.Len(t, sessions, 1)
		assert.Equal(t, "Biologia", sessions[0].Name)
	})

	t.Run("propagates list errors", func(t *testing.T) {
		server, err := NewServer(&Ports{Session: &mockSessionService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleSessionsResource(ctx, readRequest("sprout://sessions"))

		assert.ErrorContains(t, err, "listing sessions")
	})
}

func TestServer_handleNotesResource(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	createSession(t, server, "Biologia")
	_, saved, err := server.handleAutoSaveNotes(ctx, nil, AutoSaveNotesInput{
		Session: "Biologia",
		Content: `{"type":"doc","content":[{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Cellula"}]}]}`,
	})
	require.NoError(t, err)
	require.True(t, saved.Success, saved.Message)

	t.Run("renders markdown", func(t *testing.T) {
		result, err := server.handleNotesResource(ctx, readRequest("sprout://sessions/Biologia/notes"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "# Cellula")
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		_, err := server.handleNotesResource(ctx, readRequest("sprout://sessions/Nessuna/notes"))

		assert.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		_, err := server.handleNotesResource(ctx, readRequest("sprout://sessions/notes"))

		assert.Error(t, err)
	})
}

func TestServer_handleDecksResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists decks", func(t *testing.T) {
		server, _ := newTestServer(t)
		createSession(t, server, "Biologia")
		_, saved, err := server.handleSaveDeck(ctx, nil, SaveDeckInput{
			Session: "Biologia",
			Name:    "Cellula",
			Cards:   []CardOutput{{Question: "Q", Answer: "A"}},
		})
		require.NoError(t, err)
		require.True(t, saved.Success, saved.Message)

		result, err := server.handleDecksResource(ctx, readRequest("sprout://sessions/Biologia/decks"))

		require.NoError(t, err)
		var decks []DeckOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &decks))
		require.Len(t, decks, 1)
		assert.Equal(t, "Cellula", decks[0].Name)
		assert.Len(t, decks[0].Cards, 1)
	})

	t.Run("without deck service", func(t *testing.T) {
		server, err := NewServer(&Ports{Session: &mockSessionService{}})
		require.NoError(t, err)

		_, err = server.handleDecksResource(ctx, readRequest("sprout://sessions/Biologia/decks"))

		assert.Error(t, err)
	})
}
