package navigator

// Viewport is the visible window over a list. Owners call EnsureVisible
// after every selection change so the selected row is scrolled into view
// with "nearest" alignment: the window moves only as far as needed.
type Viewport struct {
	Offset int
	Height int
}

// SetHeight updates the number of visible rows and keeps the offset valid.
func (v *Viewport) SetHeight(height, total int) {
	if height < 1 {
		height = 1
	}
	v.Height = height
	v.clamp(total)
}

// EnsureVisible scrolls the minimum amount needed to show index.
func (v *Viewport) EnsureVisible(index, total int) {
	if v.Height < 1 {
		v.Height = 1
	}
	if index < 0 {
		v.clamp(total)
		return
	}
	if index < v.Offset {
		v.Offset = index
	} else if index >= v.Offset+v.Height {
		v.Offset = index - v.Height + 1
	}
	v.clamp(total)
}

// Window returns the half-open range of rows to render.
func (v Viewport) Window(total int) (start, end int) {
	start = v.Offset
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	end = start + v.Height
	if end > total {
		end = total
	}
	return start, end
}

// clamp keeps the window from scrolling past the end of the list.
func (v *Viewport) clamp(total int) {
	maxOffset := total - v.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}
