package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Enter    key.Binding

	// Inspector
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	PrevReviews     key.Binding
	NextReviews     key.Binding
	ToggleInspector key.Binding

	// Catalog
	Filter   key.Binding
	Jump     key.Binding
	Escape   key.Binding
	Refresh  key.Binding
	Buy      key.Binding
	Download key.Binding
	Review   key.Binding

	// Admin
	NewBook    key.Binding
	EditBook   key.Binding
	DeleteBook key.Binding

	// Account
	Login         key.Binding
	Register      key.Binding
	Logout        key.Binding
	Balance       key.Binding
	DeleteAccount key.Binding

	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),

		// Inspector
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "scroll details up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "scroll details down"),
		),
		PrevReviews: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "previous reviews"),
		),
		NextReviews: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "next reviews"),
		),
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle details"),
		),

		// Catalog
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Jump: key.NewBinding(
			key.WithKeys("f", "ctrl+k"),
			key.WithHelp("f", "jump to book"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/close"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),
		Buy: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Review: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write review"),
		),

		// Admin
		NewBook: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new book"),
		),
		EditBook: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit book"),
		),
		DeleteBook: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete book"),
		),

		// Account
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sign up"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "log out"),
		),
		Balance: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "balance"),
		),
		DeleteAccount: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete account"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()
