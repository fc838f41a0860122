package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/ui/input/types"
)

// gPrefixTimeout is how long a first "g" waits for the second one.
const gPrefixTimeout = 500 * time.Millisecond

// NormalMode maps single keys to page commands. Arrows, enter and escape
// are never consumed here; they belong to the page's navigator.
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type != tea.KeyRunes {
		m.lastKeyWasG = false
		return nil, false
	}

	var action types.Action
	switch msg.String() {
	case "/":
		action = types.FilterAction{}
	case "r":
		action = types.RefreshAction{}
	case "s":
		action = types.CycleSortAction{}
	case "n":
		action = types.NewLedgerAction{}
	case "v":
		action = types.OpenPagerAction{}
	case "]":
		action = types.TurnPageAction{Delta: 1}
	case "[":
		action = types.TurnPageAction{Delta: -1}
	case "x":
		action = types.ClearFilterAction{}
	case "G":
		m.lastKeyWasG = false
		action = types.JumpAction{Top: false}
	case "g":
		if m.lastKeyWasG && m.now().Sub(m.lastGTime) < gPrefixTimeout {
			m.lastKeyWasG = false
			action = types.JumpAction{Top: true}
			break
		}
		if !ctx.Supports(types.JumpAction{Top: true}) {
			return nil, false
		}
		m.lastKeyWasG = true
		m.lastGTime = m.now()
		return nil, true
	}
	if msg.String() != "g" {
		m.lastKeyWasG = false
	}

	if action == nil || !ctx.Supports(action) {
		return nil, false
	}
	if _, ok := action.(types.FilterAction); ok {
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true
	}
	return []types.Action{action}, true
}
