package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService parses flashcard files and appends the cards to decks.
type ImportService struct {
	parsers driven.ParserRegistry
	decks   driven.DeckStore
	history driven.ImportHistoryStore
	now     func() time.Time
}

// NewImportService creates a new import service. history is optional.
func NewImportService(
	parsers driven.ParserRegistry,
	decks driven.DeckStore,
	history driven.ImportHistoryStore,
) *ImportService {
	return &ImportService{
		parsers: parsers,
		decks:   decks,
		history: history,
		now:     time.Now,
	}
}

// Parse converts an import file into drafts using the parser for format,
// or for the file's extension when format is empty.
func (s *ImportService) Parse(
	_ context.Context, fileName string, content []byte, format string, opts domain.ParseOptions,
) (*domain.ParseResult, error) {
	if s.parsers == nil {
		return nil, domain.ErrNotImplemented
	}
	parser, err := s.parsers.Resolve(fileName, format)
	if err != nil {
		return nil, err
	}
	result, err := parser.Parse(content, opts)
	if err != nil {
		return nil, err
	}
	if result.Format == "" {
		result.Format = parser.Format()
	}
	return result, nil
}

// Formats returns the supported format keys.
func (s *ImportService) Formats() []string {
	if s.parsers == nil {
		return nil
	}
	return s.parsers.Formats()
}

// batch is the set of cards headed for one deck.
type batch struct {
	deck    *domain.Deck
	created bool
	cards   []domain.Flashcard
}

// Import assigns drafts to decks and persists each touched deck once.
//
// With UseDeckField set, a draft naming a deck goes to that deck (matched
// case-insensitively, created if unknown); a draft without one goes to the
// explicit target or is skipped. Otherwise every draft goes to the target.
// Decks are written in order of first use; a failed write leaves earlier
// decks persisted and is reported as a PartialFailureError.
func (s *ImportService) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	if s.decks == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(req.SessionPath) == "" {
		return nil, domain.ErrNoSession
	}
	if len(req.Drafts) == 0 {
		return nil, domain.ErrNoCards
	}
	newDeckName := strings.TrimSpace(req.NewDeckName)
	if req.TargetDeckID == 0 && newDeckName == "" && !req.UseDeckField {
		return nil, domain.ErrDeckNotSelected
	}

	existing, err := s.decks.List(ctx, req.SessionPath)
	if err != nil {
		return nil, err
	}
	known := make([]*batch, 0, len(existing))
	for i := range existing {
		known = append(known, &batch{deck: &existing[i]})
	}

	// Names that sanitize to the same directory share one deck, so an import
	// never replaces a stored deck's cards.
	findOrCreate := func(name string) *batch {
		dirName := domain.SanitizeName(name)
		for _, b := range known {
			if strings.EqualFold(strings.TrimSpace(b.deck.Name), name) ||
				strings.EqualFold(b.deck.DirName(), dirName) {
				return b
			}
		}
		b := &batch{deck: &domain.Deck{Name: name, Cards: []domain.Flashcard{}}, created: true}
		known = append(known, b)
		return b
	}

	var target *batch
	switch {
	case req.TargetDeckID != 0:
		for _, b := range known {
			if b.deck.ID == req.TargetDeckID {
				target = b
				break
			}
		}
		if target == nil {
			return nil, domain.ErrDeckNotFound
		}
	case newDeckName != "":
		if domain.SanitizeName(newDeckName) == "" {
			return nil, domain.ErrInvalidName
		}
		target = findOrCreate(newDeckName)
	}

	now := s.now()
	nextID := now.UnixMilli()
	for _, b := range known {
		if id := nextCardID(b.deck, now); id > nextID {
			nextID = id
		}
	}
	var order []*batch
	result := &domain.ImportResult{}

	for _, draft := range req.Drafts {
		var dest *batch
		deckName := strings.TrimSpace(draft.Deck)
		switch {
		case req.UseDeckField && deckName != "" && domain.SanitizeName(deckName) != "":
			dest = findOrCreate(deckName)
		case target != nil:
			dest = target
		default:
			result.Skipped++
			continue
		}

		if len(dest.cards) == 0 {
			order = append(order, dest)
		}
		dest.cards = append(dest.cards, domain.Flashcard{
			ID:        nextID,
			Question:  draft.Question,
			Answer:    draft.Answer,
			Status:    domain.NormalizeStatus(draft.Status),
			CreatedAt: now,
		})
		nextID++
	}

	for i, b := range order {
		b.deck.Cards = append(b.deck.Cards, b.cards...)
		if err := s.decks.Save(ctx, req.SessionPath, b.deck); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("save deck %q: %w", b.deck.Name, err)
			}
			return nil, &domain.PartialFailureError{
				Op:        "import flashcards",
				Completed: batchNames(order[:i]),
				Pending:   batchNames(order[i:]),
				Err:       err,
			}
		}
		result.Imported += len(b.cards)
		if b.created {
			result.CreatedDecks = append(result.CreatedDecks, b.deck.Name)
		}
	}
	result.Decks = len(order)

	s.record(ctx, req, result, now)
	return result, nil
}

func (s *ImportService) record(ctx context.Context, req domain.ImportRequest, result *domain.ImportResult, now time.Time) {
	if s.history == nil {
		return
	}
	rec := domain.ImportRecord{
		ID:          uuid.NewString(),
		SessionName: filepath.Base(req.SessionPath),
		SourceFile:  req.SourceFile,
		Format:      req.Format,
		Imported:    result.Imported,
		Skipped:     result.Skipped,
		Decks:       result.Decks,
		CreatedAt:   now,
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("record import history: %v", err)
	}
}

// History returns past imports, newest first.
func (s *ImportService) History(ctx context.Context, limit int) ([]domain.ImportRecord, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.history.List(ctx, limit)
}

func batchNames(batches []*batch) []string {
	names := make([]string, len(batches))
	for i, b := range batches {
		names[i] = b.deck.Name
	}
	return names
}
