package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportNearestAlignment(t *testing.T) {
	v := Viewport{Height: 5}

	v.EnsureVisible(3, 20)
	assert.Equal(t, 0, v.Offset, "visible rows do not scroll")

	v.EnsureVisible(7, 20)
	assert.Equal(t, 3, v.Offset, "scrolls just enough to show the row at the bottom")

	v.EnsureVisible(5, 20)
	assert.Equal(t, 3, v.Offset)

	v.EnsureVisible(1, 20)
	assert.Equal(t, 1, v.Offset, "scrolls just enough to show the row at the top")

	v.EnsureVisible(19, 20)
	assert.Equal(t, 15, v.Offset)

	v.EnsureVisible(0, 20)
	assert.Equal(t, 0, v.Offset)
}

func TestViewportClampsWhenListShrinks(t *testing.T) {
	v := Viewport{Offset: 15, Height: 5}
	v.EnsureVisible(NoSelection, 3)
	assert.Equal(t, 0, v.Offset)
}

func TestViewportWindow(t *testing.T) {
	v := Viewport{Offset: 2, Height: 4}
	start, end := v.Window(10)
	assert.Equal(t, 2, start)
	assert.Equal(t, 6, end)

	start, end = v.Window(4)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = v.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestViewportSetHeight(t *testing.T) {
	v := Viewport{Offset: 8}
	v.SetHeight(0, 10)
	assert.Equal(t, 1, v.Height)
	assert.Equal(t, 8, v.Offset)

	v.SetHeight(6, 10)
	assert.Equal(t, 4, v.Offset)
}
