package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid's keyboard bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	RowStart  key.Binding
	RowEnd    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	GridStart key.Binding
	GridEnd   key.Binding
	Activate  key.Binding
	Space     key.Binding
}

// DefaultKeyMap returns arrow-key bindings with vim-style alternates.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		RowStart: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "row start"),
		),
		RowEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "row end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		GridStart: key.NewBinding(
			key.WithKeys("ctrl+home", "g"),
			key.WithHelp("g", "first cell"),
		),
		GridEnd: key.NewBinding(
			key.WithKeys("ctrl+end", "G"),
			key.WithHelp("G", "last cell"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sort/open"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "scroll"),
		),
	}
}

// ShortHelp returns bindings for the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Activate}
}

// FullHelp returns all bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.RowStart, k.RowEnd, k.PageUp, k.PageDown},
		{k.GridStart, k.GridEnd, k.Activate, k.Space},
	}
}
