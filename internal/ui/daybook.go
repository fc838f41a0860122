package ui

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/export"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/input"
	"ledgerdesk/internal/ui/input/types"
	"ledgerdesk/internal/ui/views"
)

// dayBookPage pages through vouchers, newest first. Turning the page is a
// new list, so the selection starts over at the top.
type dayBookPage struct {
	listPage
	input    *input.Handler
	vouchers domain.VoucherPage
	page     int
	loaded   bool
	// turning is set while the pending request is for a different page
	turning bool
}

func newDayBookPage(env *Env) *dayBookPage {
	p := &dayBookPage{input: input.New(), page: 1}
	p.env = env
	p.nav = env.newNavigator(0,
		navigator.WithFocus(p.input.Focus),
		navigator.WithCommit(p.open),
		navigator.WithCancel(popPage),
	)
	return p
}

func (p *dayBookPage) Title() string { return "Day Book" }

func (p *dayBookPage) Init() tea.Cmd {
	p.load(1)
	return nil
}

func (p *dayBookPage) load(page int) {
	p.loading = true
	p.turning = page != p.vouchers.Page
	p.page = page
	p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindVouchers, Page: page})
}

func (p *dayBookPage) Supports(a types.Action) bool {
	switch a.(type) {
	case types.TurnPageAction, types.RefreshAction, types.JumpAction, types.OpenPagerAction:
		return true
	}
	return false
}

func (p *dayBookPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	actions, consumed, cmd := p.input.HandleKey(msg, p)
	if !consumed {
		return false, nil
	}
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		switch a := action.(type) {
		case types.TurnPageAction:
			cmds = append(cmds, p.turn(a.Delta))
		case types.RefreshAction:
			p.load(p.page)
		case types.JumpAction:
			p.jump(a.Top)
		case types.OpenPagerAction:
			cmds = append(cmds, p.pager())
		}
	}
	return true, tea.Batch(cmds...)
}

func (p *dayBookPage) turn(delta int) tea.Cmd {
	target := p.page + delta
	switch {
	case target < 1:
		return setStatus("Already on the first page", views.StatusInfo)
	case p.loaded && target > p.vouchers.Pages():
		return setStatus("Already on the last page", views.StatusInfo)
	}
	p.load(target)
	return nil
}

func (p *dayBookPage) pager() tea.Cmd {
	if !p.loaded {
		return setStatus("Day book is still loading", views.StatusWarning)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, export.FormatText, export.DayBookTable(p.vouchers)); err != nil {
		return setStatus("Error: "+err.Error(), views.StatusError)
	}
	return openPager(buf.String())
}

// open shows the full voucher with all its entries in the pager.
func (p *dayBookPage) open(i int) tea.Cmd {
	if i < 0 || i >= len(p.vouchers.Items) {
		return nil
	}
	return openPager(voucherText(p.vouchers.Items[i]))
}

func voucherText(v domain.Voucher) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s voucher no. %s dated %s\n\n", titleCase(string(v.Type)), v.Number, v.Date.Format("02-Jan-2006"))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Ledger\tDebit\tCredit\t")
	for _, e := range v.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", e.Ledger, blankAmount(e.Debit), blankAmount(e.Credit))
	}
	tw.Flush()
	if v.Narration != "" {
		fmt.Fprintf(&b, "\nNarration: %s\n", v.Narration)
	}
	fmt.Fprintf(&b, "\n%s\n", amount.Words(v.Amount()))
	return b.String()
}

func blankAmount(p domain.Paise) string {
	if p == 0 {
		return ""
	}
	return amount.Plain(p)
}

func (p *dayBookPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		vp, ok := e.Data.(domain.VoucherPage)
		if !ok {
			return nil
		}
		p.vouchers = vp
		p.page = vp.Page
		p.loaded = true
		if p.turning {
			p.reset(len(vp.Items))
		} else {
			p.resync(len(vp.Items))
		}
		p.turning = false
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			// stay on the page that is on screen
			p.page = p.vouchers.Page
			if p.page < 1 {
				p.page = 1
			}
			p.turning = false
			return p.failed(e.Err)
		}
	}
	return nil
}

func (p *dayBookPage) View(r *views.Renderer) string {
	cols := []views.Column{
		{Title: "Date"}, {Title: "No.", Right: true}, {Title: "Type"},
		{Title: "Particulars"}, {Title: "Amount", Right: true}, {Title: "Narration"},
	}
	rows := make([][]string, len(p.vouchers.Items))
	for i, v := range p.vouchers.Items {
		rows[i] = []string{
			v.Date.Format("02-Jan-06"), v.Number, v.Type.Short(),
			v.Particulars(), amount.Plain(v.Amount()), v.Narration,
		}
	}
	empty := "No vouchers."
	if !p.loaded {
		empty = "Loading vouchers…"
	}
	return r.RenderList(p.list(cols, rows, empty))
}

func (p *dayBookPage) Indicator() string {
	if !p.loaded {
		return fmt.Sprintf("page %d", p.page)
	}
	return fmt.Sprintf("page %d of %d · %d vouchers", p.vouchers.Page, p.vouchers.Pages(), p.vouchers.Total)
}

func (p *dayBookPage) Bindings() []key.Binding {
	return []key.Binding{keyNext, keyPrev, keyPager, keyRefresh, keyJump}
}
