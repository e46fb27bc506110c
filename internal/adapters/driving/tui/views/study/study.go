// Package study provides the flashcard review view for the TUI.
package study

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driving"
)

// View shows one card at a time and records review outcomes.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	statusbar   *status.Bar
	decks       driving.DeckService
	sessionPath string

	deck        domain.Deck
	queue       []int
	pos         int
	revealed    bool
	pendingOnly bool
	saving      bool
	err         error

	width  int
	height int
	ready  bool
}

// NewView creates a study view bound to a session.
func NewView(s *styles.Styles, km *keymap.KeyMap, decks driving.DeckService, sessionPath string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		statusbar:   status.NewBar(s, km),
		decks:       decks,
		sessionPath: sessionPath,
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDeck starts a review of deck from its first card.
func (v *View) SetDeck(deck domain.Deck) {
	deck.Cards = append([]domain.Flashcard(nil), deck.Cards...)
	v.deck = deck
	v.pos = 0
	v.revealed = false
	v.saving = false
	v.err = nil
	v.rebuildQueue()
	v.syncStatus()
}

// Update handles messages for the study view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CardReviewed:
		v.handleReviewed(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.syncStatus()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

//nolint:gocyclo // flat key dispatch
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDecks}
		}
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Flip):
		if v.Current() != nil {
			v.revealed = !v.revealed
		}
	case keymap.Matches(k, v.keymap.Next):
		v.move(1)
	case keymap.Matches(k, v.keymap.Prev):
		v.move(-1)
	case keymap.Matches(k, v.keymap.Pending):
		v.pendingOnly = !v.pendingOnly
		v.pos = 0
		v.revealed = false
		v.rebuildQueue()
	case keymap.Matches(k, v.keymap.MarkNew):
		return v, v.mark(domain.StatusNew)
	case keymap.Matches(k, v.keymap.MarkReview):
		return v, v.mark(domain.StatusReview)
	case keymap.Matches(k, v.keymap.MarkConsolidated):
		return v, v.mark(domain.StatusConsolidated)
	}
	v.syncStatus()
	return v, nil
}

func (v *View) move(delta int) {
	next := v.pos + delta
	if next < 0 || next >= len(v.queue) {
		return
	}
	v.pos = next
	v.revealed = false
}

// mark records status for the current card. Keys are ignored while a save
// is in flight.
func (v *View) mark(s domain.CardStatus) tea.Cmd {
	card := v.Current()
	if card == nil || v.saving || v.decks == nil {
		return nil
	}
	v.saving = true
	v.syncStatus()

	ctx, sessionPath, deckName, cardID := v.ctx, v.sessionPath, v.deck.Name, card.ID
	decks := v.decks
	return func() tea.Msg {
		updated, err := decks.SetCardStatus(ctx, sessionPath, deckName, cardID, s)
		return messages.CardReviewed{Deck: deckName, Card: updated, Err: err}
	}
}

func (v *View) handleReviewed(msg messages.CardReviewed) {
	v.saving = false
	if msg.Err != nil {
		v.err = msg.Err
		v.syncStatus()
		return
	}
	v.err = nil
	if msg.Card == nil || msg.Deck != v.deck.Name {
		v.syncStatus()
		return
	}

	if idx := v.deck.CardIndex(msg.Card.ID); idx >= 0 {
		v.deck.Cards[idx] = *msg.Card
	}
	v.revealed = false

	before := len(v.queue)
	v.rebuildQueue()
	switch {
	case len(v.queue) < before:
		// The card left the queue; the next one slid into its place.
		if v.pos >= len(v.queue) && v.pos > 0 {
			v.pos = len(v.queue) - 1
		}
	case v.pos < len(v.queue)-1:
		v.pos++
	}
	v.syncStatus()
}

func (v *View) rebuildQueue() {
	v.queue = v.queue[:0]
	for i := range v.deck.Cards {
		if v.pendingOnly && v.deck.Cards[i].Status == domain.StatusConsolidated {
			continue
		}
		v.queue = append(v.queue, i)
	}
	if v.pos >= len(v.queue) {
		v.pos = max(len(v.queue)-1, 0)
	}
}

func (v *View) syncStatus() {
	switch {
	case v.err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.err.Error())
	case v.saving:
		v.statusbar.SetState(status.StateSaving)
	default:
		v.statusbar.SetState(status.StateStudying)
		v.statusbar.SetMessage(v.deck.Name)
		if len(v.queue) == 0 {
			v.statusbar.SetProgress(0, 0)
		} else {
			v.statusbar.SetProgress(v.pos+1, len(v.queue))
		}
	}
}

// View renders the current card.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)

	header := v.styles.Title.Render(v.deck.Name)
	if v.pendingOnly {
		header += "  " + v.styles.Muted.Render("(pending only)")
	}
	sections = append(sections, header, "")

	card := v.Current()
	if card == nil {
		msg := "This deck has no cards."
		if v.pendingOnly && len(v.deck.Cards) > 0 {
			msg = "Every card is consolidated. Press f to show all cards."
		}
		sections = append(sections, v.styles.Muted.Render(msg))
	} else {
		sections = append(sections, v.renderCard(card))
	}

	sections = append(sections, "")
	v.statusbar.SetWidth(v.width)
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderCard(card *domain.Flashcard) string {
	var b strings.Builder
	b.WriteString(v.styles.Status(card.Status).Render(fmt.Sprintf("[%s]", card.Status)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Q: "))
	b.WriteString(card.Question)
	b.WriteString("\n\n")
	if v.revealed {
		b.WriteString(v.styles.Subtitle.Render("A: "))
		b.WriteString(card.Answer)
	} else {
		b.WriteString(v.styles.Muted.Render("(space to reveal the answer)"))
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}
	return v.styles.Card.Width(width).Render(b.String())
}

// Current returns the card being shown, or nil when the queue is empty.
func (v *View) Current() *domain.Flashcard {
	if v.pos < 0 || v.pos >= len(v.queue) {
		return nil
	}
	return &v.deck.Cards[v.queue[v.pos]]
}

// Deck returns the deck under review, including status changes.
func (v *View) Deck() domain.Deck {
	return v.deck
}

// Revealed reports whether the answer is shown.
func (v *View) Revealed() bool {
	return v.revealed
}

// Position returns the index within the queue.
func (v *View) Position() int {
	return v.pos
}

// QueueLen returns the number of cards in the queue.
func (v *View) QueueLen() int {
	return len(v.queue)
}

// PendingOnly reports whether consolidated cards are hidden.
func (v *View) PendingOnly() bool {
	return v.pendingOnly
}

// Saving reports whether a status change is in flight.
func (v *View) Saving() bool {
	return v.saving
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
