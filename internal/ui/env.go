package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/config"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/logic"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/views"
)

// Env is what pages share: the bus to request data on, the caches the fetch
// service fills and the user's settings.
type Env struct {
	Bus     eventbus.EventBus
	Config  *config.Config
	Ledgers logic.LedgerStore
	Groups  logic.GroupStore

	requestSeq atomic.Uint64
}

// NewEnv bundles the shared dependencies of the pages.
func NewEnv(bus eventbus.EventBus, cfg *config.Config, ledgers logic.LedgerStore, groups logic.GroupStore) *Env {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Env{Bus: bus, Config: cfg, Ledgers: ledgers, Groups: groups}
}

// fetch publishes a request and returns its id. Replies carrying any other
// id are stale and ignored by the page.
func (e *Env) fetch(req eventbus.FetchRequestedEvent) uint64 {
	req.RequestID = e.requestSeq.Add(1)
	if req.PageSize == 0 {
		req.PageSize = e.Config.UI.PageSize
	}
	e.Bus.Publish(req)
	return req.RequestID
}

// createLedger asks the backend to create a ledger and returns the request id.
func (e *Env) createLedger(nl domain.NewLedger) uint64 {
	id := e.requestSeq.Add(1)
	e.Bus.Publish(eventbus.LedgerCreateRequestedEvent{RequestID: id, Ledger: nl})
	return id
}

// keyMap returns the navigator bindings chosen in the settings.
func (e *Env) keyMap() navigator.KeyMap {
	if e.Config.UI.VimKeys {
		return navigator.VimKeyMap()
	}
	return navigator.DefaultKeyMap()
}

// newNavigator builds a navigator with the configured bindings. Pages other
// than the gateway pass a cancel that pops them.
func (e *Env) newNavigator(count int, opts ...navigator.Option) *navigator.Navigator {
	opts = append([]navigator.Option{navigator.WithKeyMap(e.keyMap())}, opts...)
	return navigator.New(count, opts...)
}

func pushPage(p page) tea.Cmd {
	return func() tea.Msg { return pushPageMsg{page: p} }
}

func popPage() tea.Cmd {
	return func() tea.Msg { return popPageMsg{} }
}

func setStatus(text string, kind views.StatusKind) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, kind: kind} }
}

func openPager(content string) tea.Cmd {
	return func() tea.Msg { return openPagerMsg{content: content} }
}
