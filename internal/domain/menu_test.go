package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuItemValidation(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		hotkey  rune
		action  MenuAction
		wantErr bool
	}{
		{"page", "Ledgers", 'l', OpenPage{Page: PageLedgers}, false},
		{"report", "Trial Balance", 't', OpenReport{Report: ReportTrialBalance}, false},
		{"utility", "Words", 0, RunUtility{Utility: UtilityAmountWords}, false},
		{"quit", "Quit", 'Q', Quit{}, false},
		{"empty label", "  ", 'x', Quit{}, true},
		{"nil action", "Nothing", 'n', nil, true},
		{"unknown page", "Stock", 's', OpenPage{Page: "stock"}, true},
		{"unknown report", "P&L", 'p', OpenReport{Report: "pnl"}, true},
		{"unknown utility", "Calc", 'k', RunUtility{Utility: "calc"}, true},
		{"bad hotkey", "Quit", '!', Quit{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewMenuItem(tt.label, tt.hotkey, tt.action)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMenuItem)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, item.Action)
		})
	}
}

func TestNewMenuItemLowersHotkey(t *testing.T) {
	item, err := NewMenuItem("Quit", 'Q', Quit{})
	require.NoError(t, err)
	assert.Equal(t, 'q', item.Hotkey)
}

func TestNewMenuRejectsDuplicateHotkeys(t *testing.T) {
	_, err := NewMenu(
		MenuSection{Items: []MenuItem{MustMenuItem("Ledgers", 'l', OpenPage{Page: PageLedgers})}},
		MenuSection{Items: []MenuItem{MustMenuItem("Ledger Form", 'l', OpenPage{Page: PageLedgerForm})}},
	)
	require.ErrorIs(t, err, ErrInvalidMenuItem)
}

func TestGatewayMenu(t *testing.T) {
	m := GatewayMenu()
	items := m.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "Ledgers", items[0].Label)
	assert.Equal(t, Quit{}, items[len(items)-1].Action)

	idx := m.IndexOfHotkey('T')
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, OpenReport{Report: ReportTrialBalance}, items[idx].Action)
	assert.Equal(t, -1, m.IndexOfHotkey('z'))
}

func TestMustMenuItemPanics(t *testing.T) {
	assert.Panics(t, func() { MustMenuItem("", 0, Quit{}) })
}
