// Package decks provides the deck picker view for the TUI.
package decks

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// View lists a session's decks with their status counts.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	session  string
	decks    []domain.Deck
	selected int
	err      error
	loaded   bool
	width    int
	height   int
	ready    bool
}

// NewView creates a new deck list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		session: session,
		width:   80,
		height:  24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the deck list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DecksLoaded:
		v.loaded = true
		v.err = msg.Err
		if msg.Err == nil {
			v.SetDecks(msg.Decks)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.decks)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if deck := v.SelectedDeck(); deck != nil {
			selected := *deck
			return v, func() tea.Msg {
				return messages.DeckSelected{Deck: selected}
			}
		}
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit
	}
	return v, nil
}

// View renders the deck list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Sprout"))
	b.WriteString("  ")
	b.WriteString(v.styles.Subtitle.Render(v.session))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case !v.loaded:
		b.WriteString(v.styles.Muted.Render("Loading decks..."))
		b.WriteString("\n")
	case len(v.decks) == 0:
		b.WriteString(v.styles.Muted.Render("No decks in this session. Create one with `sprout deck create`."))
		b.WriteString("\n")
	}

	for i := range v.decks {
		deck := &v.decks[i]
		counts := deck.StatusCounts()
		line := fmt.Sprintf("%-30s %3d cards  %s %s %s",
			deck.Name, len(deck.Cards),
			v.styles.Status(domain.StatusNew).Render(fmt.Sprintf("%d new", counts[domain.StatusNew])),
			v.styles.Status(domain.StatusReview).Render(fmt.Sprintf("%d review", counts[domain.StatusReview])),
			v.styles.Status(domain.StatusConsolidated).Render(fmt.Sprintf("%d done", counts[domain.StatusConsolidated])),
		)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(deck.Name) + strings.TrimPrefix(line, deck.Name))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Study  [?] Help  [q] Quit"))
	return b.String()
}

// SetDecks replaces the listed decks, keeping the cursor in range.
func (v *View) SetDecks(decks []domain.Deck) {
	v.decks = decks
	v.loaded = true
	if v.selected >= len(decks) {
		v.selected = max(len(decks)-1, 0)
	}
}

// UpdateCard replaces a card in the cached deck so counts stay current.
func (v *View) UpdateCard(deckName string, card domain.Flashcard) {
	for i := range v.decks {
		if v.decks[i].Name != deckName {
			continue
		}
		if idx := v.decks[i].CardIndex(card.ID); idx >= 0 {
			v.decks[i].Cards[idx] = card
		}
		return
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Decks returns the listed decks.
func (v *View) Decks() []domain.Deck {
	return v.decks
}

// Selected returns the cursor position.
func (v *View) Selected() int {
	return v.selected
}

// SelectedDeck returns the deck under the cursor, or nil.
func (v *View) SelectedDeck() *domain.Deck {
	if v.selected < 0 || v.selected >= len(v.decks) {
		return nil
	}
	return &v.decks[v.selected]
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}
