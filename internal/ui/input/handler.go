package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/input/modes"
	"ledgerdesk/internal/ui/input/types"
)

// Handler routes key presses through the current mode and owns the text
// input shared by text modes.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 64

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode()

	return h
}

// HandleKey returns the actions a key produced and whether it was consumed.
// Unconsumed keys should go on to the navigator.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, false, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, false, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// Text modes feed everything they did not act on to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, true, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}
	h.currentMode = change.Mode
	if h.isTextMode(h.currentMode) {
		h.textInput.SetValue(change.Data)
		h.textInput.CursorEnd()
	}
	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

// ChangeMode switches mode outside of a key press, e.g. to ask for
// confirmation after a form is submitted.
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) tea.Cmd {
	h.switchMode(types.ChangeModeAction{Mode: mode, Data: data}, ctx)
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// Focus reports the navigator role matching the current mode.
func (h *Handler) Focus() navigator.Role {
	if h.isTextMode(h.currentMode) {
		return navigator.RoleTextInput
	}
	return navigator.RoleList
}

// TextInput returns the shared input while a text mode is active.
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeFilter
}

// Reset returns to normal mode and clears the text input.
func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
