package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	toggle     key.Binding
	edit       key.Binding
	remove     key.Binding
	focus      key.Binding
	submit     key.Binding
	cancel     key.Binding
	theme      key.Binding
	toggleHelp key.Binding
	quit       key.Binding
	forceQuit  key.Binding

	// Only arrows move the cursor while the input has focus.
	inputUp   key.Binding
	inputDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		focus: key.NewBinding(
			key.WithKeys("a", "i"),
			key.WithHelp("a", "add task"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "dark/light"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		inputUp: key.NewBinding(
			key.WithKeys("up"),
		),
		inputDown: key.NewBinding(
			key.WithKeys("down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.toggle, k.edit, k.remove, k.toggleHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle},
		{k.focus, k.edit, k.remove},
		{k.submit, k.cancel},
		{k.theme, k.toggleHelp, k.quit},
	}
}

// inputKeyMap is shown while the input line has focus.
type inputKeyMap struct {
	keys keyMap
}

func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.submit, k.keys.cancel, k.keys.forceQuit}
}

func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
