package ui

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/export"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/views"
)

// trialBalancePage lists closing balances. Enter drills into the ledger
// statement of the selected row.
type trialBalancePage struct {
	listPage
	tb     domain.TrialBalance
	loaded bool
}

func newTrialBalancePage(env *Env) *trialBalancePage {
	p := &trialBalancePage{}
	p.env = env
	p.nav = env.newNavigator(0,
		navigator.WithCommit(p.open),
		navigator.WithCancel(popPage),
	)
	return p
}

func (p *trialBalancePage) Title() string { return "Trial Balance" }

func (p *trialBalancePage) Init() tea.Cmd {
	p.refresh()
	return nil
}

func (p *trialBalancePage) refresh() {
	p.loading = true
	p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindTrialBalance})
}

func (p *trialBalancePage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keyRefresh):
		p.refresh()
		return true, nil
	case key.Matches(msg, keyPager):
		if !p.loaded {
			return true, setStatus("Trial balance is still loading", views.StatusWarning)
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, export.FormatText, export.TrialBalanceTable(p.tb)); err != nil {
			return true, setStatus("Error: "+err.Error(), views.StatusError)
		}
		return true, openPager(buf.String())
	}
	return false, nil
}

func (p *trialBalancePage) open(i int) tea.Cmd {
	if i < 0 || i >= len(p.tb.Rows) {
		return nil
	}
	row := p.tb.Rows[i]
	ledger, ok := p.env.Ledgers.GetLedger(row.LedgerID)
	if !ok {
		ledger = domain.Ledger{ID: row.LedgerID, Name: row.Ledger, Group: row.Group}
	}
	return pushPage(newStatementPage(p.env, ledger))
}

func (p *trialBalancePage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		if tb, ok := e.Data.(domain.TrialBalance); ok {
			p.tb = tb
			p.loaded = true
			p.resync(len(tb.Rows))
			if !tb.Balanced() {
				return setStatus("Trial balance does not tally", views.StatusWarning)
			}
		}
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			return p.failed(e.Err)
		}
	case eventbus.LedgerCreatedEvent:
		p.refresh()
	}
	return nil
}

func (p *trialBalancePage) SetSize(width, height int) {
	// totals line
	p.listPage.SetSize(width, height-1)
}

func (p *trialBalancePage) View(r *views.Renderer) string {
	s := r.Styles()
	cols := []views.Column{{Title: "Ledger"}, {Title: "Group"}, {Title: "Debit", Right: true}, {Title: "Credit", Right: true}}
	rows := make([][]string, len(p.tb.Rows))
	for i, row := range p.tb.Rows {
		rows[i] = []string{row.Ledger, row.Group, blankAmount(row.Debit), blankAmount(row.Credit)}
	}
	empty := "No balances."
	if !p.loaded {
		return r.RenderList(p.list(cols, rows, "Loading trial balance…"))
	}
	totals := fmt.Sprintf("Total  Dr %s  Cr %s", amount.Format(p.tb.TotalDebit), amount.Format(p.tb.TotalCredit))
	return r.RenderList(p.list(cols, rows, empty)) + "\n" + s.Total.Render(totals)
}

func (p *trialBalancePage) Indicator() string {
	if !p.loaded {
		return ""
	}
	if p.tb.Balanced() {
		return "tallied"
	}
	return fmt.Sprintf("difference %s", amount.Format((p.tb.TotalDebit - p.tb.TotalCredit).Abs()))
}

func (p *trialBalancePage) Bindings() []key.Binding {
	return []key.Binding{keyPager, keyRefresh}
}
