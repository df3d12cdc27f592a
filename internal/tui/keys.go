package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the board TUI.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Drag: pick up the selected card, or drop the carried one.
	Grab key.Binding
	// Drop the carried card on nothing, or back out of the current mode.
	Back key.Binding

	MoveFirst  key.Binding
	MoveSecond key.Binding
	MoveThird  key.Binding

	Search     key.Binding
	Department key.Binding
	Priority   key.Binding

	Open     key.Binding
	Edit     key.Binding
	Assignee key.Binding
	Save     key.Binding
	Reassign key.Binding
	NextDept key.Binding
	Confirm  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
	Right: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),

	Grab: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick up/drop")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

	MoveFirst:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "move to")),
	MoveSecond: key.NewBinding(key.WithKeys("2")),
	MoveThird:  key.NewBinding(key.WithKeys("3")),

	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Department: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "department")),
	Priority:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),

	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Assignee: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "next assignee")),
	Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Reassign: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reassign")),
	NextDept: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next department")),
	Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),

	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpLine renders the bindings as "key desc" pairs.
func helpLine(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
