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

// statementPage shows the postings of one ledger with running balances.
type statementPage struct {
	listPage
	ledger    domain.Ledger
	statement domain.LedgerStatement
	loaded    bool
}

func newStatementPage(env *Env, ledger domain.Ledger) *statementPage {
	p := &statementPage{ledger: ledger}
	p.env = env
	p.nav = env.newNavigator(0, navigator.WithCancel(popPage))
	return p
}

func (p *statementPage) Title() string { return p.ledger.Name }

func (p *statementPage) Init() tea.Cmd {
	p.refresh()
	return nil
}

func (p *statementPage) refresh() {
	p.loading = true
	p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindStatement, LedgerID: p.ledger.ID})
}

func (p *statementPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keyRefresh):
		p.refresh()
		return true, nil
	case key.Matches(msg, keyPager):
		if !p.loaded {
			return true, setStatus("Statement is still loading", views.StatusWarning)
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, export.FormatText, export.StatementTable(p.statement)); err != nil {
			return true, setStatus("Error: "+err.Error(), views.StatusError)
		}
		return true, openPager(buf.String())
	}
	return false, nil
}

func (p *statementPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		if st, ok := e.Data.(domain.LedgerStatement); ok {
			p.statement = st
			if st.Ledger.ID != "" {
				p.ledger = st.Ledger
			}
			p.loaded = true
			p.resync(len(st.Lines))
		}
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			return p.failed(e.Err)
		}
	}
	return nil
}

func (p *statementPage) SetSize(width, height int) {
	// opening and closing balance lines
	p.listPage.SetSize(width, height-2)
}

func (p *statementPage) View(r *views.Renderer) string {
	s := r.Styles()
	table := export.StatementTable(p.statement)
	cols := make([]views.Column, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = views.Column{Title: c, Right: i >= 4}
	}

	empty := "No postings."
	if !p.loaded {
		empty = "Loading statement…"
	}
	opening := s.Label.Render("Opening balance: ") + amount.DrCr(p.ledger.OpeningBalance)
	body := r.RenderList(p.list(cols, table.Rows, empty))
	closing := s.Total.Render("Closing balance: " + amount.DrCr(p.statement.ClosingBalance()))
	if !p.loaded {
		return opening + "\n" + body
	}
	return opening + "\n" + body + "\n" + closing
}

func (p *statementPage) Indicator() string {
	return fmt.Sprintf("%s · %d postings", p.ledger.Group, len(p.statement.Lines))
}

func (p *statementPage) Bindings() []key.Binding {
	return []key.Binding{keyPager, keyRefresh}
}
