package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/rshade/varbrowse/internal/grid"
)

// KeyMap holds the page bindings. Grid holds the bindings forwarded to
// whichever grid has focus.
type KeyMap struct {
	NextZone  key.Binding
	PrevZone  key.Binding
	Filter    key.Binding
	Accept    key.Binding
	Back      key.Binding
	Retry     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Grid grid.KeyMap
}

// DefaultKeyMap returns the default page bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextZone: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevZone: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/clear"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Grid: grid.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.Grid.ShortHelp(), k.NextZone, k.Filter, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Grid.FullHelp(),
		[]key.Binding{k.NextZone, k.PrevZone, k.Filter, k.Back},
		[]key.Binding{k.Retry, k.Help, k.Quit},
	)
}
