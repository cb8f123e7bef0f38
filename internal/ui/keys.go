package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
	HalfPageDown  key.Binding
	HalfPageUp    key.Binding
	NextColumn    key.Binding
	PrevColumn    key.Binding
	SortAsc       key.Binding
	SortDesc      key.Binding
	PopSort       key.Binding
	FilterValue   key.Binding
	ClearFilter   key.Binding
	ResetFilters  key.Binding
	Report        key.Binding
	Refresh       key.Binding
	AdvanceStatus key.Binding
	Archive       key.Binding
	ShowArchived  key.Binding
	DismissToast  key.Binding
	ClearBanner   key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next col"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev col"),
		),
		SortAsc: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort asc"),
		),
		SortDesc: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort desc"),
		),
		PopSort: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "pop sort"),
		),
		FilterValue: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "filter by value"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "clear filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "reset filters"),
		),
		Report: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "report incident"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AdvanceStatus: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "advance status"),
		),
		Archive: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "archive"),
		),
		ShowArchived: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "toggle archived"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		ClearBanner: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear error"),
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
