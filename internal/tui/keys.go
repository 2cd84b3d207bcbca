package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the navigator.
type KeyMap struct {
	// Movement within a column
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding

	// Movement across columns
	Left  key.Binding
	Right key.Binding

	// History column
	Mark key.Binding

	// Diff column
	CycleMode   key.Binding
	ToggleColor key.Binding
	Fullscreen  key.Binding
	Wrap        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	ScrollHome  key.Binding
	Search      key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	Yank        key.Binding

	// General
	Narrower key.Binding
	Wider    key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u", "K"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d", "J"),
			key.WithHelp("ctrl+d", "half page down"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "close column / go up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("l/→", "open column / descend"),
		),

		Mark: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "mark comparison base"),
		),

		CycleMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle diff mode"),
		),
		ToggleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle color"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fullscreen"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "scroll right"),
		),
		ScrollHome: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "scroll to start"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search diff"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy diff"),
		),

		Narrower: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "narrow pane"),
		),
		Wider: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "widen pane"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar hint.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Mark, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.HalfUp, k.HalfDown},
		{k.Left, k.Right, k.Mark, k.Narrower, k.Wider, k.Refresh},
		{k.CycleMode, k.ToggleColor, k.Wrap, k.Fullscreen, k.ScrollLeft, k.ScrollRight},
		{k.Search, k.NextMatch, k.PrevMatch, k.Yank, k.Help, k.Quit},
	}
}
