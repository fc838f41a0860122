package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/views"
)

// statusTimeout is how long non-error status messages stay up.
var statusTimeout = 3 * time.Second

// frameChrome is the number of terminal lines the frame spends on the title
// bar, status line, key hints and margins.
const frameChrome = 7

// stackEntry is an open page and the func that detaches its navigator.
type stackEntry struct {
	page   page
	detach func()
}

// Model is the root bubbletea model: a stack of pages whose navigators are
// attached to a single scope so only the top page sees navigation keys.
type Model struct {
	env      *Env
	scope    *navigator.Scope
	stack    []stackEntry
	renderer *views.Renderer
	help     help.Model
	spinner  spinner.Model
	pager    Pager

	width    int
	height   int
	showHelp bool

	status     string
	statusKind views.StatusKind
	statusSeq  int
}

// NewModel creates the root model with the gateway menu open.
func NewModel(env *Env) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := &Model{
		env:      env,
		scope:    navigator.NewScope(),
		renderer: views.NewRenderer(),
		help:     help.New(),
		spinner:  sp,
	}
	m.push(newGatewayPage(env))
	return m
}

// SetProgram gives the model the program it runs in, for the pager.
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewOvPager(p)
}

// SetPager replaces the pager.
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if top := m.top(); top != nil {
		cmds = append(cmds, top.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for _, e := range m.stack {
			e.page.SetSize(msg.Width, m.bodyHeight())
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pushPageMsg:
		return m, m.push(msg.page)

	case popPageMsg:
		m.pop()
		return m, nil

	case quitMsg:
		m.closeAll()
		return m, tea.Quit

	case statusMsg:
		return m, m.setStatus(msg.text, msg.kind)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case openPagerMsg:
		return m, m.runPager(msg.content)

	case pagerDoneMsg:
		if msg.err != nil {
			return m, m.setStatus("Pager failed: "+msg.err.Error(), views.StatusError)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if top := m.top(); top != nil {
		return m, top.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.closeAll()
		return tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		case "p":
			m.showHelp = false
			return m.runPager(m.helpText())
		}
		return nil
	}

	top := m.top()
	if top == nil {
		return nil
	}
	if handled, cmd := top.HandleKey(msg); handled {
		return cmd
	}
	if key.Matches(msg, keyHelp) {
		m.showHelp = true
		return nil
	}

	out := m.scope.Dispatch(msg)
	if out.Changed {
		top.Follow()
	}
	return out.Cmd
}

func (m *Model) handleEvent(ev eventbus.DomainEvent) tea.Cmd {
	var cmds []tea.Cmd
	switch e := ev.(type) {
	case eventbus.SessionExpiredEvent:
		cmds = append(cmds, m.setStatus("Session expired. Run `ledgerdesk login` and restart.", views.StatusError))
	case eventbus.ErrorEvent:
		slog.Error(e.Message, "error", e.Err)
		cmds = append(cmds, m.setStatus(e.Message, views.StatusError))
	}
	for _, entry := range m.stack {
		cmds = append(cmds, entry.page.HandleEvent(ev))
	}
	return tea.Batch(cmds...)
}

// push opens p on top of the stack and gives it the keyboard.
func (m *Model) push(p page) tea.Cmd {
	detach := m.scope.Attach(p.Navigator())
	m.stack = append(m.stack, stackEntry{page: p, detach: detach})
	p.SetSize(m.width, m.bodyHeight())
	slog.Debug("page opened", "page", p.Title(), "depth", len(m.stack))
	if len(m.stack) == 1 {
		// Init runs the first page's commands
		return nil
	}
	return p.Init()
}

// pop closes the top page. The gateway is never popped.
func (m *Model) pop() {
	if len(m.stack) <= 1 {
		return
	}
	top := m.stack[len(m.stack)-1]
	top.detach()
	m.stack = m.stack[:len(m.stack)-1]
	slog.Debug("page closed", "page", top.page.Title(), "depth", len(m.stack))
}

func (m *Model) closeAll() {
	for i := len(m.stack) - 1; i >= 0; i-- {
		m.stack[i].detach()
	}
}

func (m *Model) top() page {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1].page
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - frameChrome
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	if kind == views.StatusError {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) runPager(content string) tea.Cmd {
	if m.pager == nil {
		return m.setStatus("No pager available", views.StatusWarning)
	}
	pager := m.pager
	return func() tea.Msg {
		return pagerDoneMsg{err: pager.Show(content)}
	}
}

func (m *Model) bindings() []key.Binding {
	top := m.top()
	if top == nil {
		return nil
	}
	km := top.Navigator().KeyMap()
	var nav []key.Binding
	if top.Navigator().Count() > 0 {
		nav = append(nav, km.Up, km.Down, km.Commit)
	}
	if len(m.stack) > 1 {
		nav = append(nav, km.Cancel)
	}
	return nav
}

func (m *Model) helpText() string {
	top := m.top()
	if top == nil {
		return ""
	}
	return helpContent(m.renderer, top.Title(), m.bindings(), top.Bindings())
}

func (m *Model) View() string {
	top := m.top()
	if top == nil {
		return ""
	}

	crumbs := make([]string, 0, len(m.stack))
	for _, e := range m.stack[1:] {
		crumbs = append(crumbs, e.page.Title())
	}

	indicator := top.Indicator()
	if top.Loading() {
		indicator = m.spinner.View() + " loading  " + indicator
	}

	hints := append(m.bindings(), top.Bindings()...)
	hints = append(hints, keyHelp)

	frame := m.renderer.RenderFrame(views.Frame{
		Width:      m.width,
		Height:     m.height,
		Company:    m.env.Config.Company,
		Breadcrumb: crumbs,
		Indicator:  indicator,
		Body:       top.View(m.renderer),
		Status:     m.status,
		StatusKind: m.statusKind,
		HelpLine:   m.help.ShortHelpView(hints),
	})

	if m.showHelp {
		return m.renderer.RenderPopupOverlay(frame, m.helpText(), m.width, m.height)
	}
	return frame
}
