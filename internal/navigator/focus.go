package navigator

// Role describes the kind of control that currently has keyboard focus.
type Role int

const (
	RoleNone Role = iota
	RoleList
	RoleButton
	RoleTextInput
	RoleTextArea
	RoleSelect
)

// Editable reports whether keys should go to the control instead of a
// navigator: text entry and option selectors consume arrows and enter.
func (r Role) Editable() bool {
	switch r {
	case RoleTextInput, RoleTextArea, RoleSelect:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleList:
		return "list"
	case RoleButton:
		return "button"
	case RoleTextInput:
		return "textinput"
	case RoleTextArea:
		return "textarea"
	case RoleSelect:
		return "select"
	default:
		return "none"
	}
}

// FocusFunc reports the role of the focused control.
type FocusFunc func() Role
