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

// groupsPage lists the chart of accounts. Enter opens the ledgers of the
// selected group.
type groupsPage struct {
	listPage
	groups []domain.AccountGroup
}

func newGroupsPage(env *Env) *groupsPage {
	p := &groupsPage{}
	p.env = env
	p.nav = env.newNavigator(0,
		navigator.WithCommit(p.open),
		navigator.WithCancel(popPage),
	)
	return p
}

func (p *groupsPage) Title() string { return "Account Groups" }

func (p *groupsPage) Init() tea.Cmd {
	p.groups = p.env.Groups.GetAllGroups()
	p.reset(len(p.groups))
	p.refresh()
	return nil
}

func (p *groupsPage) refresh() {
	p.loading = true
	p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindGroups})
}

func (p *groupsPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, keyRefresh) {
		p.refresh()
		return true, nil
	}
	return false, nil
}

func (p *groupsPage) open(i int) tea.Cmd {
	if i < 0 || i >= len(p.groups) {
		return nil
	}
	return pushPage(newLedgersPage(p.env, "group:"+p.groups[i].Name))
}

func (p *groupsPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		if groups, ok := e.Data.([]domain.AccountGroup); ok {
			p.groups = groups
			p.resync(len(groups))
		}
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			return p.failed(e.Err)
		}
	}
	return nil
}

func (p *groupsPage) View(r *views.Renderer) string {
	counts := make(map[string]int)
	for _, l := range p.env.Ledgers.GetAllLedgers() {
		counts[strings.ToLower(l.Group)]++
	}

	cols := []views.Column{{Title: "Group"}, {Title: "Nature"}, {Title: "Under"}, {Title: "Ledgers", Right: true}}
	rows := make([][]string, len(p.groups))
	for i, g := range p.groups {
		under := g.Parent
		if under == "" {
			under = "Primary"
		}
		rows[i] = []string{g.Name, titleCase(string(g.Nature)), under, fmt.Sprint(counts[strings.ToLower(g.Name)])}
	}
	return r.RenderList(p.list(cols, rows, "No account groups."))
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p *groupsPage) Indicator() string {
	return fmt.Sprintf("%d groups", len(p.groups))
}

func (p *groupsPage) Bindings() []key.Binding {
	return []key.Binding{keyRefresh}
}
