package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Platforms key.Binding
	Recents   key.Binding
	ClearText key.Binding
	Reset     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Press     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Platforms: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "platform")),
		Recents:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recents")),
		ClearText: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Reset:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "reset mods")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Press:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press key")),
	}
}
