package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"ledgerdesk/internal/ui/views"
)

// helpContent lists the keys of the current page, then the global ones.
func helpContent(r *views.Renderer, title string, nav, page []key.Binding) string {
	s := r.Styles()
	var b strings.Builder

	b.WriteString(s.Title.Render("Keys: " + title))
	b.WriteString("\n")

	section := func(name string, bindings []key.Binding) {
		if len(bindings) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(s.Section.Render(name))
		b.WriteString("\n")
		for _, kb := range bindings {
			h := kb.Help()
			if h.Key == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s  %s\n", s.Hotkey.Render(fmt.Sprintf("%-10s", h.Key)), h.Desc)
		}
	}

	section("Navigation", nav)
	section("This page", page)
	section("Everywhere", []key.Binding{
		keyHelp,
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open this help in the pager")),
		keyQuit,
	})

	b.WriteString("\n")
	b.WriteString(s.Dim.Render("Filter examples: sharma, group:sundry debtors, dr, cr, zero"))
	return strings.TrimRight(b.String(), "\n")
}
