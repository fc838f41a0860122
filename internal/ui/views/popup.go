package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// RenderPopupOverlay centres popupContent over a greyed out copy of
// mainContent.
func (r *Renderer) RenderPopupOverlay(mainContent, popupContent string, width, height int) string {
	popup := r.styles.InfoBox.Render(popupContent)
	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)

	base := strings.Split(ansiRE.ReplaceAllString(mainContent, ""), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (len(base) - len(popupLines)) / 2
	if y < 0 {
		y = 0
	}

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(base))
	for i, line := range base {
		pi := i - y
		if pi < 0 || pi >= len(popupLines) {
			out[i] = grey.Render(line)
			continue
		}
		left, right := splitColumns(line, x, x+popupW)
		out[i] = grey.Render(left) + popupLines[pi] + grey.Render(right)
	}
	return strings.Join(out, "\n")
}

// splitColumns returns the text of plain before column from and after
// column to, padding the left part with spaces when the line is short.
func splitColumns(plain string, from, to int) (string, string) {
	runes := []rune(plain)
	var left, right strings.Builder
	col := 0
	for _, r := range runes {
		switch {
		case col < from:
			left.WriteRune(r)
		case col >= to:
			right.WriteRune(r)
		}
		col++
	}
	if col < from {
		left.WriteString(strings.Repeat(" ", from-col))
	}
	return left.String(), right.String()
}
