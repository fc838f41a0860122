package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the styles for callers that render their own fragments.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Frame is the chrome around a page body.
type Frame struct {
	Width      int
	Height     int
	Company    string
	Breadcrumb []string
	Indicator  string
	Body       string
	Status     string
	StatusKind StatusKind
	HelpLine   string
}

// StatusKind picks the colour of the status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// RenderFrame lays out the title bar, body, status line and key hints,
// pushing the hints to the bottom of the terminal.
func (r *Renderer) RenderFrame(f Frame) string {
	var content strings.Builder

	title := r.styles.Title.Render(f.Company)
	if len(f.Breadcrumb) > 0 {
		title += r.styles.Dim.Render("  " + strings.Join(f.Breadcrumb, " › "))
	}
	if f.Indicator != "" {
		right := r.styles.Dim.Render(f.Indicator)
		gap := f.Width - 4 - lipgloss.Width(title) - lipgloss.Width(right)
		if gap < 2 {
			gap = 2
		}
		title += strings.Repeat(" ", gap) + right
	}
	content.WriteString(title)
	content.WriteString("\n\n")
	content.WriteString(f.Body)

	var footer []string
	if f.Status != "" {
		footer = append(footer, r.statusStyle(f.StatusKind).Render(f.Status))
	}
	if f.HelpLine != "" {
		footer = append(footer, r.styles.Help.Render(f.HelpLine))
	}

	if len(footer) > 0 {
		used := strings.Count(content.String(), "\n") + 1
		available := f.Height - 2
		if available <= 0 {
			available = 22
		}
		if pad := available - used - len(footer); pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	main := r.styles.Main
	if f.Height > 0 {
		main = main.MaxHeight(f.Height)
	}
	return main.Render(content.String())
}

func (r *Renderer) statusStyle(k StatusKind) lipgloss.Style {
	switch k {
	case StatusSuccess:
		return r.styles.StatusSuccess
	case StatusWarning:
		return r.styles.StatusWarning
	case StatusError:
		return r.styles.StatusError
	}
	return r.styles.StatusLoading
}
