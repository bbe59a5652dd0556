package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the status surface.
type KeyMap struct {
	Toggle     key.Binding
	Start      key.Binding
	Stop       key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "start/stop"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "stop"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	return help.New()
}

type stateKeyMap struct {
	keys  KeyMap
	state state
}

// ForState returns a contextual key map implementing help.KeyMap for the given state.
func (k KeyMap) ForState(s state) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

// ShortHelp implements help.KeyMap.
func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case stateIdle:
		return []key.Binding{s.keys.Toggle, s.keys.Start, s.keys.ToggleHelp, s.keys.Quit}
	case stateRunning:
		return []key.Binding{s.keys.Toggle, s.keys.Stop, s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.Quit}
	}
}

// FullHelp implements help.KeyMap.
func (s stateKeyMap) FullHelp() [][]key.Binding {
	switch s.state {
	case stateIdle, stateRunning:
		return [][]key.Binding{{s.keys.Toggle, s.keys.Start, s.keys.Stop}, {s.keys.ToggleHelp, s.keys.Quit}}
	default:
		return [][]key.Binding{{s.keys.Quit}}
	}
}
