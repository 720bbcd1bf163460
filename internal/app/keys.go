package app

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// KeyEvent is one key press. Name uses bubbletea's key names ("h", "enter", "esc",
// "backspace", " ", "ctrl+c"); Runes holds the typed characters, if any.
type KeyEvent struct {
	Name  string
	Runes []rune
}

// String implements fmt.Stringer so events can be matched against key bindings
func (e KeyEvent) String() string {
	return e.Name
}

// KeyFromName builds an event from a key name; single characters also carry their rune
func KeyFromName(name string) KeyEvent {
	ev := KeyEvent{Name: name}
	if r := []rune(name); len(r) == 1 {
		ev.Runes = r
	}
	return ev
}

func (e KeyEvent) printable() bool {
	if len(e.Runes) == 0 {
		return false
	}
	for _, r := range e.Runes {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// KeyMap defines every key binding of the planner.
// ForceQuit sits outside the mode machine: Resolve checks it before looking at the
// mode, so it quits from Normal, Editing and Selecting alike.
type KeyMap struct {
	Left      key.Binding
	Down      key.Binding
	Up        key.Binding
	Right     key.Binding
	Activate  key.Binding
	Fetch     key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Commit    key.Binding
	Erase     key.Binding
	Next      key.Binding
	Prev      key.Binding
}

// DefaultKeyMap returns the vim-style bindings with arrow-key equivalents
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),
		Activate: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i/enter", "edit/toggle"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "search"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Commit: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc/enter", "done"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next route"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous route"),
		),
	}
}

// Resolve maps a key press to the action it triggers in mode.
// ForceQuit wins in every mode.
func (k KeyMap) Resolve(mode Mode, ev KeyEvent) Action {
	if key.Matches(ev, k.ForceQuit) {
		return ActionQuit
	}

	switch mode {
	case ModeNormal:
		switch {
		case key.Matches(ev, k.Quit):
			return ActionQuit
		case key.Matches(ev, k.Activate):
			return ActionActivate
		case key.Matches(ev, k.Left):
			return ActionMoveLeft
		case key.Matches(ev, k.Down):
			return ActionMoveDown
		case key.Matches(ev, k.Up):
			return ActionMoveUp
		case key.Matches(ev, k.Right):
			return ActionMoveRight
		case key.Matches(ev, k.Fetch):
			return ActionFetch
		case key.Matches(ev, k.Dismiss):
			return ActionDismiss
		}

	case ModeEditing:
		switch {
		case key.Matches(ev, k.Commit):
			return ActionCommit
		case key.Matches(ev, k.Erase):
			return ActionErase
		case ev.printable():
			return ActionType
		}

	case ModeSelecting:
		switch {
		case key.Matches(ev, k.Next):
			return ActionNext
		case key.Matches(ev, k.Prev):
			return ActionPrev
		case key.Matches(ev, k.Commit):
			return ActionCommit
		}
	}

	return ActionNone
}

// Help returns the bindings relevant in mode, for use with a bubbles help.Model
func (k KeyMap) Help(mode Mode) ModeHelp {
	return ModeHelp{keys: k, mode: mode}
}

// ModeHelp lists the key bindings of a single input mode
type ModeHelp struct {
	keys KeyMap
	mode Mode
}

// ShortHelp returns keybindings to be shown in the mini help view
func (h ModeHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.mode {
	case ModeEditing:
		return []key.Binding{k.Commit, k.Erase, k.ForceQuit}
	case ModeSelecting:
		return []key.Binding{k.Next, k.Prev, k.Commit, k.ForceQuit}
	default:
		return []key.Binding{k.Left, k.Down, k.Up, k.Right, k.Activate, k.Fetch, k.Quit}
	}
}

// FullHelp returns keybindings for the expanded help view
func (h ModeHelp) FullHelp() [][]key.Binding {
	k := h.keys
	switch h.mode {
	case ModeEditing:
		return [][]key.Binding{{k.Commit, k.Erase}, {k.ForceQuit}}
	case ModeSelecting:
		return [][]key.Binding{{k.Next, k.Prev}, {k.Commit, k.ForceQuit}}
	default:
		return [][]key.Binding{
			{k.Left, k.Down, k.Up, k.Right},
			{k.Activate, k.Fetch, k.Dismiss},
			{k.Quit, k.ForceQuit},
		}
	}
}
