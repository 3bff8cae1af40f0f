package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/reviewlist/tui/common"
	"github.com/CrestNiraj12/reviewlist/tui/reviews"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps = reviews.Deps

// App is the root Bubble Tea model. It owns global keys and tears the list
// down on quit.
type App struct {
	list reviews.Model
	keys common.KeyMap
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		list: reviews.New(deps),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the list.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles global keys and delegates everything else to the list.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, a.keys.Quit) {
		a.list.Close()
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// View renders the list.
func (a App) View() string {
	return a.list.View()
}

// Close releases the list's background work. Safe to call more than once.
func (a App) Close() {
	a.list.Close()
}
