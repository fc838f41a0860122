package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/views"
)

// gatewayPage is the top level menu. It has no cancel: Esc does nothing
// here and the page is never popped.
type gatewayPage struct {
	listPage
	menu  domain.Menu
	items []domain.MenuItem
}

func newGatewayPage(env *Env) *gatewayPage {
	p := &gatewayPage{menu: domain.GatewayMenu()}
	p.env = env
	p.items = p.menu.Items()
	p.nav = env.newNavigator(len(p.items), navigator.WithCommit(p.commit))
	return p
}

func (p *gatewayPage) Title() string { return "Gateway" }

func (p *gatewayPage) Init() tea.Cmd {
	// Warm the caches the master pages read from
	p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindGroups})
	p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindLedgers})
	return nil
}

// HandleKey turns a hotkey into a jump to its item followed by a commit.
func (p *gatewayPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false, nil
	}
	if key.Matches(msg, p.nav.KeyMap().Down, p.nav.KeyMap().Up) {
		return false, nil
	}
	i := p.menu.IndexOfHotkey(msg.Runes[0])
	if i < 0 || !p.nav.Select(i) {
		return false, nil
	}
	p.Follow()
	return true, p.commit(i)
}

func (p *gatewayPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd { return nil }

func (p *gatewayPage) commit(i int) tea.Cmd {
	if i < 0 || i >= len(p.items) {
		return nil
	}
	switch a := p.items[i].Action.(type) {
	case domain.OpenPage:
		switch a.Page {
		case domain.PageLedgers:
			return pushPage(newLedgersPage(p.env, ""))
		case domain.PageGroups:
			return pushPage(newGroupsPage(p.env))
		case domain.PageLedgerForm:
			return pushPage(newLedgerFormPage(p.env))
		case domain.PageDayBook:
			return pushPage(newDayBookPage(p.env))
		}
	case domain.OpenReport:
		if a.Report == domain.ReportTrialBalance {
			return pushPage(newTrialBalancePage(p.env))
		}
	case domain.RunUtility:
		if a.Utility == domain.UtilityAmountWords {
			return pushPage(newWordsPage(p.env))
		}
	case domain.Quit:
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

func (p *gatewayPage) View(r *views.Renderer) string {
	s := r.Styles()
	var b strings.Builder
	i := 0
	for si, section := range p.menu.Sections {
		if si > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Section.Render(section.Title))
		b.WriteString("\n")
		for _, item := range section.Items {
			label := item.Label
			if item.Hotkey != 0 {
				label = fmt.Sprintf("%s  %s", s.Hotkey.Render(string(item.Hotkey)), label)
			}
			if i == p.nav.Index() {
				b.WriteString(s.SelectionBg.Render(s.Highlight.Render("▸ " + label)))
			} else {
				b.WriteString("  " + label)
			}
			b.WriteString("\n")
			i++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *gatewayPage) Indicator() string { return "" }

func (p *gatewayPage) Bindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("l", "g", "c", "d", "t", "w", "q"), key.WithHelp("letter", "jump to item")),
	}
}
