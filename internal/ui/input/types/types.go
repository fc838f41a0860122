package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeFilter:
		return "filter"
	case ModeConfirm:
		return "confirm"
	default:
		return "normal"
	}
}

// Action represents a command the page should execute
type Action interface {
	Type() string
}

// Context tells mode handlers which actions the current page understands.
// Keys mapping to unsupported actions are left for the navigator.
type Context interface {
	Supports(action Action) bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
