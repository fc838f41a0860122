package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ledgerdesk/internal/navigator"
)

// Column describes one column of a list. A zero Width sizes the column to
// its widest cell.
type Column struct {
	Title string
	Width int
	Right bool
}

// List is everything needed to draw a selectable table.
type List struct {
	Columns  []Column
	Rows     [][]string
	Selected int
	Viewport navigator.Viewport
	Empty    string
	Width    int
}

// RenderList draws a header, the visible window of rows with the selected
// row highlighted, and scroll indicators when rows are cut off.
func (r *Renderer) RenderList(l List) string {
	if len(l.Rows) == 0 {
		empty := l.Empty
		if empty == "" {
			empty = "Nothing to show."
		}
		return r.styles.Dim.Render(empty)
	}

	widths := columnWidths(l.Columns, l.Rows)
	var b strings.Builder

	if hasTitles(l.Columns) {
		titles := make([]string, len(l.Columns))
		for i, c := range l.Columns {
			titles[i] = c.Title
		}
		b.WriteString(r.styles.Header.Render("  " + joinCells(l.Columns, widths, titles)))
		b.WriteString("\n")
	}

	vp := l.Viewport
	if vp.Height <= 0 {
		vp.Height = len(l.Rows)
	}
	start, end := vp.Window(len(l.Rows))
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		line := joinCells(l.Columns, widths, l.Rows[i])
		if i == l.Selected {
			line = "▸ " + line
			if l.Width > 0 {
				line = padRight(line, l.Width-4)
			}
			line = r.styles.SelectionBg.Render(r.styles.Highlight.Render(line))
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(l.Rows) {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more below", len(l.Rows)-end)))
	}
	return b.String()
}

func hasTitles(cols []Column) bool {
	for _, c := range cols {
		if c.Title != "" {
			return true
		}
	}
	return false
}

func columnWidths(cols []Column, rows [][]string) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		widths[i] = lipgloss.Width(c.Title)
		for _, row := range rows {
			if i < len(row) && lipgloss.Width(row[i]) > widths[i] {
				widths[i] = lipgloss.Width(row[i])
			}
		}
	}
	return widths
}

func joinCells(cols []Column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = truncate(cell, widths[i])
		if c.Right {
			parts[i] = padLeft(cell, widths[i])
		} else {
			parts[i] = padRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
