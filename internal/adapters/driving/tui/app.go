package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/views/decks"
	"github.com/custodia-labs/sprout-cli/internal/adapters/driving/tui/views/study"
	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// App is the study TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// session is the session being studied.
	session *domain.Session

	// startDeck is opened as soon as the decks load, when set.
	startDeck string

	styles *styles.Styles
	keymap *keymap.KeyMap

	decksView *decks.View
	studyView *study.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a study app for session.
func NewApp(ports *Ports, session *domain.Session) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if session == nil || session.FullPath == "" {
		return nil, fmt.Errorf("creating app: %w", ErrNoSession)
	}

	return NewAppWithStyles(ports, session, styles.DefaultStyles()), nil
}

// NewAppWithStyles creates a study app with the given styles. ports must
// already be valid.
func NewAppWithStyles(ports *Ports, session *domain.Session, s *styles.Styles) *App {
	km := keymap.DefaultKeyMap()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		session:     session,
		styles:      s,
		keymap:      km,
		decksView:   decks.NewView(s, km, session.Name),
		studyView:   study.NewView(s, km, ports.Deck, session.FullPath),
		currentView: messages.ViewDecks,
	}
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.studyView.WithContext(ctx)
	return a
}

// WithDeck opens the named deck once decks are loaded.
func (a *App) WithDeck(name string) *App {
	a.startDeck = strings.TrimSpace(name)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sprout - "+a.session.Name),
		a.loadDecks(),
	)
}

func (a *App) loadDecks() tea.Cmd {
	ctx, svc, path := a.ctx, a.ports.Deck, a.session.FullPath
	return func() tea.Msg {
		list, err := svc.List(ctx, path)
		return messages.DecksLoaded{Decks: list, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewDecks:
			a.decksView, cmd = a.decksView.Update(msg)
		case messages.ViewStudy:
			a.studyView, cmd = a.studyView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Quit) {
				return a, tea.Quit
			}
			a.currentView = messages.ViewDecks
		}
		return a, cmd

	case messages.DecksLoaded:
		a.err = msg.Err
		a.decksView, cmd = a.decksView.Update(msg)
		if msg.Err == nil && a.startDeck != "" {
			name := a.startDeck
			a.startDeck = ""
			if i := domain.FindDeckFold(msg.Decks, name); i >= 0 {
				return a, a.open(msg.Decks[i])
			}
			a.err = fmt.Errorf("%w: %s", domain.ErrDeckNotFound, name)
		}
		return a, cmd

	case messages.DeckSelected:
		return a, a.open(msg.Deck)

	case messages.CardReviewed:
		if msg.Err != nil {
			a.err = msg.Err
		} else if msg.Card != nil {
			a.decksView.UpdateCard(msg.Deck, *msg.Card)
		}
		a.studyView, cmd = a.studyView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewStudy {
			a.studyView, cmd = a.studyView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) open(deck domain.Deck) tea.Cmd {
	a.studyView.SetDeck(deck)
	a.currentView = messages.ViewStudy
	return a.studyView.Init()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewStudy:
		return a.studyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.decksView.View()
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[any key] back to decks"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StudyView returns the study view.
func (a *App) StudyView() *study.View {
	return a.studyView
}

// DecksView returns the deck list view.
func (a *App) DecksView() *decks.View {
	return a.decksView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.decksView.SetDimensions(width, height)
	a.studyView.SetDimensions(width, height)
}
