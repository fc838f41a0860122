package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/input/types"
	"ledgerdesk/internal/ui/views"
)

// page is one screen of the stack. Each page owns exactly one navigator,
// which the root model attaches to its scope while the page is open.
type page interface {
	Title() string
	Navigator() *navigator.Navigator
	Init() tea.Cmd
	// HandleKey sees a key before the navigator does. Returning true stops
	// the key there.
	HandleKey(msg tea.KeyMsg) (bool, tea.Cmd)
	HandleEvent(ev eventbus.DomainEvent) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	SetSize(width, height int)
	// Follow scrolls the selection into view after the navigator moved it.
	Follow()
	View(r *views.Renderer) string
	Indicator() string
	Loading() bool
	Bindings() []key.Binding
}

// listChrome is the number of body lines a list spends on its header and
// scroll indicators.
const listChrome = 3

// listPage holds what every list backed page needs.
type listPage struct {
	env     *Env
	nav     *navigator.Navigator
	vp      navigator.Viewport
	width   int
	height  int
	loading bool
	request uint64
}

func (p *listPage) Navigator() *navigator.Navigator { return p.nav }

func (p *listPage) Loading() bool { return p.loading }

func (p *listPage) Update(msg tea.Msg) tea.Cmd { return nil }

// SetSize reserves extra lines for page specific content above or below
// the list.
func (p *listPage) SetSize(width, height int) {
	p.width, p.height = width, height
	p.vp.SetHeight(height-listChrome, p.nav.Count())
	p.Follow()
}

func (p *listPage) Follow() {
	p.vp.EnsureVisible(p.nav.Index(), p.nav.Count())
}

// jump selects the first or last row.
func (p *listPage) jump(top bool) {
	if top {
		p.nav.Select(0)
	} else {
		p.nav.Select(p.nav.Count() - 1)
	}
	p.Follow()
}

// resync keeps the selection across a refresh of the same list.
func (p *listPage) resync(count int) {
	p.nav.Resync(count)
	p.vp.SetHeight(p.vp.Height, count)
	p.Follow()
}

// reset starts over for a different list.
func (p *listPage) reset(count int) {
	p.nav.Reset(count)
	p.vp.Offset = 0
	p.vp.SetHeight(p.vp.Height, count)
	p.Follow()
}

// owns reports whether an event answers this page's latest request.
// Anything older is stale and dropped.
func (p *listPage) owns(requestID uint64) bool {
	return p.request != 0 && requestID == p.request
}

// selected returns the current index if it points at a row.
func (p *listPage) selected() (int, bool) {
	if !p.nav.Selected() {
		return 0, false
	}
	return p.nav.Index(), true
}

func (p *listPage) list(cols []views.Column, rows [][]string, empty string) views.List {
	return views.List{
		Columns:  cols,
		Rows:     rows,
		Selected: p.nav.Index(),
		Viewport: p.vp,
		Empty:    empty,
		Width:    p.width,
	}
}

// failed reports a fetch error without touching the current list.
func (p *listPage) failed(err error) tea.Cmd {
	p.loading = false
	return setStatus("Error: "+err.Error(), views.StatusError)
}

// supports adapts a predicate to types.Context.
type supports func(types.Action) bool

func (s supports) Supports(a types.Action) bool { return s(a) }

var (
	keyRefresh = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	keyFilter  = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter"))
	keyClear   = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filter"))
	keySort    = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	keyNew     = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new ledger"))
	keyPager   = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view in pager"))
	keyNext    = key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page"))
	keyPrev    = key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page"))
	keyJump    = key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("gg/G", "top/bottom"))
	keyHelp    = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
)
