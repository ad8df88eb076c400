package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the desktop
type KeyMap struct {
	// Focus
	Tab      key.Binding
	ShiftTab key.Binding
	Escape   key.Binding

	// Window actions (apply to the topmost window)
	FullScreen key.Binding
	Minimize   key.Binding
	Close      key.Binding
	RestoreAll key.Binding
	Move       key.Binding

	// Desktop actions
	NewWindow key.Binding
	Yank      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings
var DefaultKeyMap = KeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "raise next window"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "raise previous window"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	FullScreen: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle fullscreen"),
	),
	Minimize: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "minimize"),
	),
	Close: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close"),
	),
	RestoreAll: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restore all"),
	),
	Move: key.NewBinding(
		key.WithKeys("up", "down", "left", "right", "k", "j", "h", "l"),
		key.WithHelp("h/j/k/l", "move window"),
	),
	NewWindow: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy layout"),
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

// HelpBindings returns the keybindings to display in help
func HelpBindings() []key.Binding {
	return []key.Binding{
		DefaultKeyMap.Tab,
		DefaultKeyMap.ShiftTab,
		DefaultKeyMap.Move,
		DefaultKeyMap.FullScreen,
		DefaultKeyMap.Minimize,
		DefaultKeyMap.Close,
		DefaultKeyMap.RestoreAll,
		DefaultKeyMap.NewWindow,
		DefaultKeyMap.Yank,
		DefaultKeyMap.Escape,
		DefaultKeyMap.Help,
		DefaultKeyMap.Quit,
	}
}

// Delta returns the move offset for a Move key
func Delta(k string) (int, int) {
	switch k {
	case "up", "k":
		return 0, -1
	case "down", "j":
		return 0, 1
	case "left", "h":
		return -2, 0
	case "right", "l":
		return 2, 0
	}
	return 0, 0
}
