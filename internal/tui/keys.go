package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	restart key.Binding
	urls    key.Binding
	open    key.Binding
	copy    key.Binding
	help    key.Binding
	quit    key.Binding
}

var keys = keyMap{
	restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart server")),
	urls:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "show urls")),
	open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
	copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy local url")),
	help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "toggle help")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.help, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.restart, k.urls, k.open},
		{k.copy, k.help, k.quit},
	}
}
