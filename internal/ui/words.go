package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/navigator"
	"ledgerdesk/internal/ui/views"
)

// wordsPage spells out an amount as it is typed. Focus never leaves the
// text input, so the navigator sees no keys and Esc is handled here.
type wordsPage struct {
	listPage
	field textinput.Model
}

func newWordsPage(env *Env) *wordsPage {
	field := textinput.New()
	field.Placeholder = "1,23,456.78"
	field.CharLimit = 24
	field.Focus()

	p := &wordsPage{field: field}
	p.env = env
	p.nav = env.newNavigator(0, navigator.WithFocus(func() navigator.Role { return navigator.RoleTextInput }))
	return p
}

func (p *wordsPage) Title() string { return "Amount in Words" }

func (p *wordsPage) Init() tea.Cmd { return textinput.Blink }

func (p *wordsPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return true, popPage()
	case tea.KeyEnter:
		return true, nil
	}
	var cmd tea.Cmd
	p.field, cmd = p.field.Update(msg)
	return true, cmd
}

func (p *wordsPage) HandleEvent(ev eventbus.DomainEvent) tea.Cmd { return nil }

func (p *wordsPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.field, cmd = p.field.Update(msg)
	return cmd
}

// words returns the amount and its spelling, or an error for bad input.
// Empty input gives empty words.
func (p *wordsPage) words() (domain.Paise, string, error) {
	v := strings.TrimSpace(p.field.Value())
	if v == "" {
		return 0, "", nil
	}
	paise, err := amount.Parse(v)
	if err != nil {
		return 0, "", err
	}
	return paise, amount.Words(paise), nil
}

func (p *wordsPage) View(r *views.Renderer) string {
	s := r.Styles()
	var b strings.Builder
	b.WriteString(s.Label.Render("Amount") + p.field.View())
	b.WriteString("\n\n")

	paise, words, err := p.words()
	switch {
	case errors.Is(err, amount.ErrSyntax):
		b.WriteString(s.StatusError.Render("Not an amount: use digits, commas and up to two decimals"))
	case err != nil:
		b.WriteString(s.StatusError.Render(err.Error()))
	case words == "":
		b.WriteString(s.Dim.Render("Type an amount to see it in words."))
	default:
		b.WriteString(s.Total.Render(words))
		b.WriteString("\n")
		b.WriteString(s.Dim.Render(amount.Format(paise)))
	}
	return b.String()
}

func (p *wordsPage) Indicator() string { return "" }

func (p *wordsPage) Bindings() []key.Binding {
	return nil
}
