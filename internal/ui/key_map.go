package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next  key.Binding
	prev  key.Binding
	enter key.Binding
	back  key.Binding
	yes   key.Binding
	no    key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next")),
		prev:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:   key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		no:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.enter, k.back, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.enter},
		{k.back, k.yes, k.no},
		{k.quit},
	}
}
