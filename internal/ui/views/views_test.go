package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerdesk/internal/navigator"
)

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestRenderListEmpty(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "No ledgers.", plain(r.RenderList(List{Empty: "No ledgers."})))
}

func TestRenderListMarksSelection(t *testing.T) {
	r := NewRenderer()
	out := plain(r.RenderList(List{
		Columns:  []Column{{Title: "Name"}, {Title: "Balance", Right: true}},
		Rows:     [][]string{{"Cash", "10.00"}, {"Bank", "2,000.00"}},
		Selected: 1,
		Viewport: navigator.Viewport{Height: 10},
	}))
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "  Name   Balance", lines[0])
	assert.Equal(t, "  Cash     10.00", lines[1])
	assert.Equal(t, "▸ Bank  2,000.00", lines[2])
}

func TestRenderListScrollIndicators(t *testing.T) {
	r := NewRenderer()
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{string(rune('a' + i))}
	}
	out := plain(r.RenderList(List{
		Columns:  []Column{{}},
		Rows:     rows,
		Selected: 4,
		Viewport: navigator.Viewport{Offset: 3, Height: 3},
	}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "  ↑ 3 more above", lines[0])
	assert.Equal(t, "  d", lines[1])
	assert.Equal(t, "▸ e", lines[2])
	assert.Equal(t, "  f", lines[3])
	assert.Equal(t, "  ↓ 4 more below", lines[4])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
}

func TestRenderPopupOverlay(t *testing.T) {
	r := NewRenderer()
	base := strings.Repeat(strings.Repeat("x", 40)+"\n", 9) + strings.Repeat("x", 40)
	out := plain(r.RenderPopupOverlay(base, "hi", 40, 10))
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out, "hi")
	for _, l := range lines {
		assert.Equal(t, 40, len([]rune(l)), l)
	}
}

func TestRenderFrameShowsStatusAndHints(t *testing.T) {
	r := NewRenderer()
	out := plain(r.RenderFrame(Frame{
		Width: 60, Height: 12, Company: "Acme Traders",
		Breadcrumb: []string{"Gateway", "Ledgers"},
		Body:       "body",
		Status:     "loaded",
		HelpLine:   "? help",
	}))
	assert.Contains(t, out, "Acme Traders  Gateway › Ledgers")
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "? help")
}

func TestRenderListWithoutViewportShowsAll(t *testing.T) {
	r := NewRenderer()
	out := plain(r.RenderList(List{
		Columns:  []Column{{}},
		Rows:     [][]string{{"a"}, {"b"}},
		Selected: -1,
	}))
	assert.Equal(t, "  a\n  b", out)
}
