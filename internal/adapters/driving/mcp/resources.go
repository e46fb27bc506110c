package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Sprout resources.
	uriScheme = "sprout://"

	sessionsPrefix = uriScheme + "sessions/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "All study sessions with their attached files",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsPrefix + "{session}/notes",
		Name:        "session-notes",
		Description: "Notes of a session rendered as Markdown",
		MIMEType:    "text/markdown",
	}, s.handleNotesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsPrefix + "{session}/decks",
		Name:        "session-decks",
		Description: "Flashcard decks of a session",
		MIMEType:    "application/json",
	}, s.handleDecksResource)
}

// handleSessionsResource returns every session as JSON.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Session.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	infos := make([]SessionOutput, len(sessions))
	for i := range sessions {
		infos[i] = toSessionOutput(&sessions[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleNotesResource renders a session's note document as Markdown.
func (s *Server) handleNotesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Note == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	session, err := s.sessionFromURI(ctx, req.Params.URI, "/notes")
	if err != nil {
		return nil, err
	}

	loaded, err := s.ports.Note.Load(ctx, session.FullPath)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	doc, err := domain.ParseNoteDocument(loaded.Document)
	if err != nil {
		return nil, fmt.Errorf("parsing notes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Markdown(),
		}},
	}, nil
}

// handleDecksResource returns a session's decks as JSON.
func (s *Server) handleDecksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Deck == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	session, err := s.sessionFromURI(ctx, req.Params.URI, "/decks")
	if err != nil {
		return nil, err
	}

	decks, err := s.ports.Deck.List(ctx, session.FullPath)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	return jsonResource(req.Params.URI, toDeckOutputs(decks))
}

// sessionFromURI resolves the session named in sprout://sessions/{session}<suffix>.
// Unknown sessions are reported as missing resources.
func (s *Server) sessionFromURI(ctx context.Context, uri, suffix string) (*domain.Session, error) {
	ref := extractSessionRef(uri, suffix)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	session, err := s.ports.Session.Resolve(ctx, ref)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeSessionNotFound {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	return session, nil
}

// extractSessionRef extracts the unescaped session segment from a URI like
// sprout://sessions/{session}/notes.
func extractSessionRef(uri, suffix string) string {
	if !strings.HasPrefix(uri, sessionsPrefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	segment := strings.TrimSuffix(strings.TrimPrefix(uri, sessionsPrefix), suffix)
	if segment == "" || strings.Contains(segment, "/") {
		return ""
	}
	ref, err := url.PathUnescape(segment)
	if err != nil {
		return ""
	}
	return ref
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
