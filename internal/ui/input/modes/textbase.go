package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/ui/input/types"
)

// textMode is shared by modes that edit the handler's text input. Enter
// submits, Esc cancels, ctrl+u clears; every other key is left for the
// handler to feed to the input.
type textMode struct {
	mode  types.Mode
	name  string
	field *textinput.Model
}

func newTextMode(mode types.Mode, name string, field *textinput.Model) textMode {
	return textMode{mode: mode, name: name, field: field}
}

func (m textMode) Name() string { return m.name }

func (m textMode) Enter(ctx types.Context) []types.Action {
	m.field.Prompt = ""
	m.field.Focus()
	return nil
}

func (m textMode) Exit(ctx types.Context) []types.Action {
	m.field.Blur()
	return nil
}

func (m textMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyEnter:
		return []types.Action{
			types.SubmitTextAction{Text: m.field.Value(), Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case tea.KeyCtrlU:
		m.field.SetValue("")
		return []types.Action{types.UpdateTextAction{Text: ""}}, true
	}
	return nil, false
}
