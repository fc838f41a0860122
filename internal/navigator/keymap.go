package navigator

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is the navigator's view of a key press.
type Key int

const (
	KeyOther Key = iota
	KeyDown
	KeyUp
	KeyCommit
	KeyCancel
)

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyCommit:
		return "commit"
	case KeyCancel:
		return "cancel"
	default:
		return "other"
	}
}

// KeyMap holds the bindings the navigator reacts to.
type KeyMap struct {
	Down   key.Binding
	Up     key.Binding
	Commit key.Binding
	Cancel key.Binding
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

// DefaultKeyMap binds the arrow keys, enter and escape.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// VimKeyMap is DefaultKeyMap plus j/k.
func VimKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Down.SetKeys("down", "j")
	km.Down.SetHelp("↓/j", "down")
	km.Up.SetKeys("up", "k")
	km.Up.SetHelp("↑/k", "up")
	return km
}

// Classify maps a key press onto the navigator's keys.
func (km KeyMap) Classify(msg tea.KeyMsg) Key {
	switch {
	case key.Matches(msg, km.Down):
		return KeyDown
	case key.Matches(msg, km.Up):
		return KeyUp
	case key.Matches(msg, km.Commit):
		return KeyCommit
	case key.Matches(msg, km.Cancel):
		return KeyCancel
	}
	return KeyOther
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Commit, km.Cancel}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Up, km.Down}, {km.Commit, km.Cancel}}
}
