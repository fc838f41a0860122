package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/logic"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/input"
	"ledgerdesk/internal/ui/input/types"
	"ledgerdesk/internal/ui/views"
)

// ledgersPage lists ledgers with a live filter and a sort order. While the
// filter is being typed the navigator stays out of the way.
type ledgersPage struct {
	listPage
	input       *input.Handler
	all         []domain.Ledger
	rows        []domain.Ledger
	filter      string
	savedFilter string
	sort        logic.SortMode
}

// newLedgersPage opens the ledger list, optionally pre-filtered.
func newLedgersPage(env *Env, filter string) *ledgersPage {
	p := &ledgersPage{input: input.New(), filter: filter}
	p.env = env
	p.nav = env.newNavigator(0,
		navigator.WithFocus(p.input.Focus),
		navigator.WithCommit(p.open),
		navigator.WithCancel(popPage),
	)
	return p
}

func (p *ledgersPage) Title() string { return "Ledgers" }

func (p *ledgersPage) Init() tea.Cmd {
	// Show the cache straight away, then refresh it
	p.all = p.env.Ledgers.GetAllLedgers()
	p.apply(true)
	p.refresh()
	return nil
}

func (p *ledgersPage) refresh() {
	p.loading = true
	p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindLedgers})
}

// apply rebuilds the visible rows. A new filter or sort is a different
// list and resets the selection; a refresh keeps it.
func (p *ledgersPage) apply(reset bool) {
	rows := logic.FilterLedgers(p.all, p.filter)
	logic.SortLedgers(rows, p.sort)
	p.rows = rows
	if reset {
		p.reset(len(rows))
	} else {
		p.resync(len(rows))
	}
}

func (p *ledgersPage) Supports(a types.Action) bool {
	switch a.(type) {
	case types.FilterAction, types.ClearFilterAction, types.CycleSortAction,
		types.RefreshAction, types.NewLedgerAction, types.JumpAction:
		return true
	}
	return false
}

func (p *ledgersPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	before := p.input.CurrentMode()
	actions, consumed, cmd := p.input.HandleKey(msg, p)
	if !consumed {
		return false, nil
	}
	if before == types.ModeNormal && p.input.CurrentMode() == types.ModeFilter {
		p.savedFilter = p.filter
	}

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, p.do(action))
	}
	return true, tea.Batch(cmds...)
}

func (p *ledgersPage) do(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.UpdateTextAction:
		p.setFilter(a.Text)
	case types.SubmitTextAction:
		p.setFilter(a.Text)
	case types.CancelTextAction:
		p.setFilter(p.savedFilter)
	case types.ClearFilterAction:
		p.setFilter("")
	case types.CycleSortAction:
		p.sort = p.sort.Next()
		p.apply(true)
		return setStatus("Sorted by "+p.sort.String(), views.StatusInfo)
	case types.RefreshAction:
		p.refresh()
	case types.NewLedgerAction:
		return pushPage(newLedgerFormPage(p.env))
	case types.JumpAction:
		p.jump(a.Top)
	}
	return nil
}

func (p *ledgersPage) setFilter(filter string) {
	filter = strings.TrimSpace(filter)
	if filter == p.filter {
		return
	}
	p.filter = filter
	p.apply(true)
}

func (p *ledgersPage) open(i int) tea.Cmd {
	if i < 0 || i >= len(p.rows) {
		return nil
	}
	return pushPage(newStatementPage(p.env, p.rows[i]))
}

func (p *ledgersPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		if ledgers, ok := e.Data.([]domain.Ledger); ok {
			p.all = ledgers
			p.apply(false)
		}
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			return p.failed(e.Err)
		}
	case eventbus.LedgerCreatedEvent:
		p.all = p.env.Ledgers.GetAllLedgers()
		p.apply(false)
	}
	return nil
}

func (p *ledgersPage) Update(msg tea.Msg) tea.Cmd {
	return p.input.Update(msg)
}

func (p *ledgersPage) SetSize(width, height int) {
	// one line for the filter bar
	p.listPage.SetSize(width, height-1)
}

func (p *ledgersPage) View(r *views.Renderer) string {
	s := r.Styles()
	var b strings.Builder

	switch {
	case p.input.TextInput() != nil:
		b.WriteString(s.Filter.Render("Filter: ") + p.input.TextInput().View())
	case p.filter != "":
		b.WriteString(s.Filter.Render("Filter: "+p.filter) + s.Dim.Render("  (x to clear)"))
	default:
		b.WriteString(s.Dim.Render("Press / to filter"))
	}
	b.WriteString("\n")

	cols := []views.Column{{Title: "Name"}, {Title: "Group"}}
	if p.env.Config.UI.ShowOpeningBalance {
		cols = append(cols, views.Column{Title: "Opening", Right: true})
	}
	cols = append(cols, views.Column{Title: "Closing", Right: true})

	rows := make([][]string, len(p.rows))
	for i, l := range p.rows {
		row := []string{l.Name, l.Group}
		if p.env.Config.UI.ShowOpeningBalance {
			row = append(row, amount.DrCr(l.OpeningBalance))
		}
		rows[i] = append(row, amount.DrCr(l.Balance))
	}

	empty := "No ledgers."
	if p.filter != "" {
		empty = "No ledgers match the filter."
	}
	b.WriteString(r.RenderList(p.list(cols, rows, empty)))
	return b.String()
}

func (p *ledgersPage) Indicator() string {
	return fmt.Sprintf("%d of %d · sort: %s", len(p.rows), len(p.all), p.sort)
}

func (p *ledgersPage) Bindings() []key.Binding {
	return []key.Binding{keyFilter, keyClear, keySort, keyRefresh, keyNew, keyJump}
}
