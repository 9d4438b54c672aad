package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the player key bindings.
type KeyMap struct {
	Scramble     key.Binding
	Longer       key.Binding
	Shorter      key.Binding
	Solve        key.Binding
	AnimateMach  key.Binding
	AnimateHuman key.Binding
	Reset        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scramble, k.Solve, k.AnimateMach, k.AnimateHuman, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Scramble, k.Longer, k.Shorter},
		{k.Solve, k.AnimateMach, k.AnimateHuman},
		{k.Reset, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Scramble: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scramble"),
		),
		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "longer scramble"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "shorter scramble"),
		),
		Solve: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "solve"),
		),
		AnimateMach: key.NewBinding(
			key.WithKeys("m", "1"),
			key.WithHelp("m", "animate machine"),
		),
		AnimateHuman: key.NewBinding(
			key.WithKeys("h", "2"),
			key.WithHelp("h", "animate human-style"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
