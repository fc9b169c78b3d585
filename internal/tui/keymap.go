package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the interactive editor.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	NextPreset  key.Binding
	Organize    key.Binding
	Recursive   key.Binding
	DeleteEmpty key.Binding
	DryRun      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous category"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next category"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous extension"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next extension"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle extension"),
		),
		NextPreset: key.NewBinding(
			key.WithKeys("tab", "p"),
			key.WithHelp("tab/p", "next preset"),
		),
		Organize: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "organize now"),
		),
		Recursive: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle subfolders"),
		),
		DeleteEmpty: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle delete empty"),
		),
		DryRun: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle dry run"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextPreset, k.Organize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.NextPreset, k.Organize},
		{k.Recursive, k.DeleteEmpty, k.DryRun},
		{k.Help, k.Quit},
	}
}
