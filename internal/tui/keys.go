package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the checker's key bindings. Editing keys belong to the
// text input.
type KeyMap struct {
	Submit key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "keep in history"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// HelpText renders the bindings as a one-line hint.
func (k KeyMap) HelpText() string {
	text := ""
	for i, b := range []key.Binding{k.Submit, k.Clear, k.Quit} {
		if i > 0 {
			text += " " + SymbolBullet + " "
		}
		text += b.Help().Key + " " + b.Help().Desc
	}
	return text
}
