package modes

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"ledgerdesk/internal/ui/input/types"
)

type onlyJumps struct{}

func (onlyJumps) Supports(a types.Action) bool {
	_, ok := a.(types.JumpAction)
	return ok
}

func g() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}
}

func TestSlowSecondGDoesNotJump(t *testing.T) {
	now := time.Now()
	m := NewNormalMode()
	m.now = func() time.Time { return now }

	_, consumed := m.HandleKey(g(), onlyJumps{})
	assert.True(t, consumed)

	now = now.Add(time.Second)
	actions, consumed := m.HandleKey(g(), onlyJumps{})
	assert.True(t, consumed, "starts a new prefix")
	assert.Empty(t, actions)

	now = now.Add(100 * time.Millisecond)
	actions, _ = m.HandleKey(g(), onlyJumps{})
	assert.Equal(t, []types.Action{types.JumpAction{Top: true}}, actions)
}

func TestOtherKeyCancelsGPrefix(t *testing.T) {
	m := NewNormalMode()
	m.HandleKey(g(), onlyJumps{})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, onlyJumps{})
	actions, _ := m.HandleKey(g(), onlyJumps{})
	assert.Empty(t, actions)
}

func TestUnsupportedKeysAreNotConsumed(t *testing.T) {
	m := NewNormalMode()
	_, consumed := m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, onlyJumps{})
	assert.False(t, consumed)
	_, consumed = m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, onlyJumps{})
	assert.False(t, consumed)
}
