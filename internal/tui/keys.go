package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Route    key.Binding
	Dismiss  key.Binding
	NewOrder key.Binding
	Theme    key.Binding
	Zoom     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "navigate")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("", "")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open panel")),
		Route:    key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "route mode")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NewOrder: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new order")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Zoom:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// panelKeyMap covers actions while the sticky panel is open.
type panelKeyMap struct {
	ConfirmPix key.Binding
	Receive    key.Binding
	Courier    key.Binding
	Note       key.Binding
	Advance    key.Binding
	Cancel     key.Binding
	Dismiss    key.Binding
}

func newPanelKeyMap() panelKeyMap {
	return panelKeyMap{
		ConfirmPix: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "confirm pix")),
		Receive:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "receive payment")),
		Courier:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "courier")),
		Note:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "note")),
		Advance:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advance")),
		Cancel:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel order")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Enter, k.Route, k.NewOrder, k.Theme, k.Zoom, k.Quit}
}

func (k panelKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.ConfirmPix, k.Receive, k.Courier, k.Note, k.Advance, k.Cancel, k.Dismiss}
}
