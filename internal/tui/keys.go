package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextPane key.Binding
	PrevPane key.Binding
	Enter    key.Binding
	Back     key.Binding
	FocusBar key.Binding
	Filter   key.Binding

	// Actions
	Quit         key.Binding
	ForceQuit    key.Binding
	Help         key.Binding
	ClearResults key.Binding
	DeleteRecent key.Binding
	ClearRecents key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous pane"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search/open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		FocusBar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "focus search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter results"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ClearResults: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear results"),
		),
		DeleteRecent: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete recent"),
		),
		ClearRecents: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear recents"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.NextPane, k.Filter, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.PrevPane, k.FocusBar},
		{k.Enter, k.Back, k.Filter, k.ClearResults},
		{k.DeleteRecent, k.ClearRecents, k.Help, k.Quit, k.ForceQuit},
	}
}

var _ help.KeyMap = KeyMap{}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()
