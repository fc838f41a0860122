package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/input"
	"ledgerdesk/internal/ui/input/types"
	"ledgerdesk/internal/ui/views"
)

// Form rows, in navigation order.
const (
	fieldName = iota
	fieldGroup
	fieldOpening
	fieldSave
	fieldCount
)

// ledgerFormPage creates a ledger. The navigator moves between rows; Enter
// on a row starts editing it, which hands the keyboard to the text input
// or group selector until Enter or Esc.
type ledgerFormPage struct {
	listPage
	input   *input.Handler
	name    textinput.Model
	opening textinput.Model
	groups  []string
	group   int
	// editing is the row being edited, or -1
	editing    int
	savedGroup int
	savedText  string
	pending    domain.NewLedger
	// saving is set from a confirmed create until its reply arrives
	saving bool
	err    string
}

func newLedgerFormPage(env *Env) *ledgerFormPage {
	name := textinput.New()
	name.Placeholder = "e.g. Verma Traders"
	name.CharLimit = 64

	opening := textinput.New()
	opening.Placeholder = "0.00 (prefix - for credit)"
	opening.CharLimit = 20

	p := &ledgerFormPage{input: input.New(), name: name, opening: opening, editing: -1}
	p.env = env
	p.nav = env.newNavigator(fieldCount,
		navigator.WithFocus(p.focus),
		navigator.WithCommit(p.activate),
		navigator.WithCancel(popPage),
	)
	return p
}

func (p *ledgerFormPage) Title() string { return "Create Ledger" }

func (p *ledgerFormPage) Init() tea.Cmd {
	p.setGroups(p.env.Groups.GetAllGroups())
	if len(p.groups) == 0 {
		p.loading = true
		p.request = p.env.fetch(eventbus.FetchRequestedEvent{Kind: domain.KindGroups})
	}
	return nil
}

func (p *ledgerFormPage) setGroups(groups []domain.AccountGroup) {
	current := p.groupName()
	p.groups = p.groups[:0]
	for _, g := range groups {
		p.groups = append(p.groups, g.Name)
	}
	p.group = 0
	for i, g := range p.groups {
		if g == current {
			p.group = i
		}
	}
	if len(p.groups) == 0 && p.editing == fieldGroup {
		p.stopEditing()
		p.err = "No account groups loaded yet"
	}
}

func (p *ledgerFormPage) groupName() string {
	if p.group < 0 || p.group >= len(p.groups) {
		return ""
	}
	return p.groups[p.group]
}

// focus reports the role of whatever currently owns the keyboard.
func (p *ledgerFormPage) focus() navigator.Role {
	switch p.editing {
	case fieldName, fieldOpening:
		return navigator.RoleTextInput
	case fieldGroup:
		return navigator.RoleSelect
	}
	if p.nav != nil && p.nav.Index() == fieldSave {
		return navigator.RoleButton
	}
	return navigator.RoleList
}

func (p *ledgerFormPage) Supports(a types.Action) bool {
	_, ok := a.(types.ConfirmAction)
	return ok
}

// activate is the navigator's commit: edit the row or submit the form.
func (p *ledgerFormPage) activate(i int) tea.Cmd {
	if p.saving {
		return setStatus("Saving…", views.StatusInfo)
	}
	p.err = ""
	switch i {
	case fieldName:
		p.editing = i
		p.savedText = p.name.Value()
		return p.name.Focus()
	case fieldOpening:
		p.editing = i
		p.savedText = p.opening.Value()
		return p.opening.Focus()
	case fieldGroup:
		if len(p.groups) == 0 {
			p.err = "No account groups loaded yet"
			return nil
		}
		p.editing = i
		p.savedGroup = p.group
		return nil
	case fieldSave:
		return p.submit()
	}
	return nil
}

func (p *ledgerFormPage) submit() tea.Cmd {
	nl, err := p.ledger()
	if err != nil {
		p.err = err.Error()
		return nil
	}
	p.pending = nl
	return p.input.ChangeMode(types.ModeConfirm, "", p)
}

// ledger reads and validates the form.
func (p *ledgerFormPage) ledger() (domain.NewLedger, error) {
	nl := domain.NewLedger{
		Name:  strings.TrimSpace(p.name.Value()),
		Group: p.groupName(),
	}
	if v := strings.TrimSpace(p.opening.Value()); v != "" {
		paise, err := amount.Parse(v)
		if err != nil {
			return nl, fmt.Errorf("opening balance: %w", err)
		}
		nl.OpeningBalance = paise
	}
	return nl, nl.Validate()
}

func (p *ledgerFormPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if p.input.CurrentMode() == types.ModeConfirm {
		actions, _, _ := p.input.HandleKey(msg, p)
		for _, action := range actions {
			if c, ok := action.(types.ConfirmAction); ok && c.Accepted && !p.saving {
				p.saving = true
				p.loading = true
				p.request = p.env.createLedger(p.pending)
			}
		}
		return true, nil
	}

	switch p.editing {
	case fieldName:
		return true, p.editText(&p.name, msg)
	case fieldOpening:
		return true, p.editText(&p.opening, msg)
	case fieldGroup:
		p.editGroup(msg)
		return true, nil
	}
	return false, nil
}

func (p *ledgerFormPage) editText(ti *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		p.stopEditing()
		return nil
	case tea.KeyEsc:
		ti.SetValue(p.savedText)
		p.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return cmd
}

func (p *ledgerFormPage) editGroup(msg tea.KeyMsg) {
	n := len(p.groups)
	if n == 0 {
		p.stopEditing()
		return
	}
	switch msg.String() {
	case "enter":
		p.stopEditing()
	case "esc":
		p.group = p.savedGroup
		p.stopEditing()
	case "down", "right", "j", "l", "tab":
		p.group = (p.group + 1) % n
	case "up", "left", "k", "h", "shift+tab":
		p.group = (p.group - 1 + n) % n
	}
}

func (p *ledgerFormPage) stopEditing() {
	p.editing = -1
	p.name.Blur()
	p.opening.Blur()
}

func (p *ledgerFormPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd {
	switch e := ev.(type) {
	case eventbus.DataLoadedEvent:
		if e.Kind == domain.KindGroups {
			if groups, ok := e.Data.([]domain.AccountGroup); ok {
				p.setGroups(groups)
			}
			if p.owns(e.RequestID) {
				p.loading = false
			}
		}
	case eventbus.LedgerCreatedEvent:
		if !p.owns(e.RequestID) {
			return nil
		}
		p.loading = false
		p.saving = false
		return tea.Batch(
			popPage(),
			setStatus(fmt.Sprintf("Ledger %q created under %s", e.Ledger.Name, e.Ledger.Group), views.StatusSuccess),
		)
	case eventbus.FetchFailedEvent:
		if p.owns(e.RequestID) {
			p.loading = false
			p.saving = false
			p.err = e.Err.Error()
		}
	}
	return nil
}

func (p *ledgerFormPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.editing {
	case fieldName:
		p.name, cmd = p.name.Update(msg)
	case fieldOpening:
		p.opening, cmd = p.opening.Update(msg)
	}
	return cmd
}

func (p *ledgerFormPage) View(r *views.Renderer) string {
	s := r.Styles()
	var b strings.Builder

	row := func(i int, label, value string) {
		marker := "  "
		style := s.Field
		if i == p.nav.Index() {
			marker = "▸ "
			style = s.FieldActive
		}
		b.WriteString(marker + s.Label.Render(label) + style.Render(value) + "\n")
	}

	row(fieldName, "Name", p.name.View())

	group := p.groupName()
	if group == "" {
		group = s.Dim.Render("(loading groups)")
	}
	if p.editing == fieldGroup {
		group = fmt.Sprintf("‹ %s ›", group)
	}
	row(fieldGroup, "Under", group)

	opening := p.opening.View()
	if v := strings.TrimSpace(p.opening.Value()); v != "" && p.editing != fieldOpening {
		if paise, err := amount.Parse(v); err == nil {
			opening += s.Dim.Render("  " + amount.DrCr(paise))
		} else {
			opening += s.StatusError.Render("  not an amount")
		}
	}
	row(fieldOpening, "Opening balance", opening)

	b.WriteString("\n")
	save := "[ Save ]"
	if p.nav.Index() == fieldSave {
		b.WriteString(s.SelectionBg.Render(s.Highlight.Render("▸ " + save)))
	} else {
		b.WriteString("  " + save)
	}
	b.WriteString("\n")

	switch {
	case p.input.CurrentMode() == types.ModeConfirm:
		b.WriteString("\n")
		b.WriteString(s.Confirm.Render(fmt.Sprintf("Create ledger %q under %s with opening %s? (y/n)",
			p.pending.Name, p.pending.Group, amount.DrCr(p.pending.OpeningBalance))))
	case p.err != "":
		b.WriteString("\n")
		b.WriteString(s.StatusError.Render(p.err))
	}
	return b.String()
}

func (p *ledgerFormPage) Indicator() string {
	switch p.editing {
	case fieldName, fieldOpening:
		return "editing · enter to keep, esc to undo"
	case fieldGroup:
		return "choose group · ←/→ to change"
	}
	return ""
}

func (p *ledgerFormPage) Bindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit field / save")),
	}
}
