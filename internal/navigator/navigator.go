package navigator

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NoSelection is the sentinel index meaning "no item selected".
const NoSelection = -1

// Initialize returns the starting selection for a list of count items.
func Initialize(count int) int {
	if count > 0 {
		return 0
	}
	return NoSelection
}

// Step applies a single navigation key to index over count items and
// returns the new index. Commit and cancel never move the index.
// Up from NoSelection selects the last item and Down selects the first.
func Step(k Key, index, count int) int {
	if count <= 0 {
		return NoSelection
	}
	switch k {
	case KeyDown:
		if index == NoSelection {
			return 0
		}
		return wrap(index+1, count)
	case KeyUp:
		if index == NoSelection {
			return count - 1
		}
		return wrap(index-1+count, count)
	}
	return index
}

// wrap is a modulo that never returns a negative result.
func wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// Outcome reports what HandleKey did with a key press.
type Outcome struct {
	// Handled means the key belongs to the navigator and must not be
	// routed anywhere else.
	Handled bool
	// Changed is set when the selection index moved.
	Changed bool
	// Index is the selection after the key was applied.
	Index int
	// Cmd is whatever the commit or cancel callback returned.
	Cmd tea.Cmd
}

// Navigator keeps a selection index over an externally owned list and turns
// key presses into index changes, commits and cancels. It only ever knows
// the length of the list.
type Navigator struct {
	index    int
	count    int
	keys     KeyMap
	focus    FocusFunc
	onCommit func(index int) tea.Cmd
	onCancel func() tea.Cmd
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithCommit registers the callback fired on Enter with a valid selection.
func WithCommit(fn func(index int) tea.Cmd) Option {
	return func(n *Navigator) { n.onCommit = fn }
}

// WithCancel registers the callback fired on Escape. Without it Escape
// passes through untouched.
func WithCancel(fn func() tea.Cmd) Option {
	return func(n *Navigator) { n.onCancel = fn }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(km KeyMap) Option {
	return func(n *Navigator) { n.keys = km }
}

// WithFocus tells the navigator where keyboard focus currently is so it can
// stay out of the way of text editing.
func WithFocus(fn FocusFunc) Option {
	return func(n *Navigator) { n.focus = fn }
}

// New creates a navigator over count items.
func New(count int, opts ...Option) *Navigator {
	if count < 0 {
		count = 0
	}
	n := &Navigator{
		index: Initialize(count),
		count: count,
		keys:  DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Index returns the current selection, or NoSelection.
func (n *Navigator) Index() int {
	return n.index
}

// Count returns the item count the navigator last saw.
func (n *Navigator) Count() int {
	return n.count
}

// Selected reports whether the index points at an item of the current list.
func (n *Navigator) Selected() bool {
	return n.index >= 0 && n.index < n.count
}

// KeyMap returns the bindings in use.
func (n *Navigator) KeyMap() KeyMap {
	return n.keys
}

// Resync records a refreshed item count for the same list. An existing
// selection is kept as is, even if it is now past the end; the next
// navigation step wraps it back into range.
func (n *Navigator) Resync(count int) {
	if count < 0 {
		count = 0
	}
	n.count = count
	switch {
	case count == 0:
		n.index = NoSelection
	case n.index == NoSelection:
		n.index = 0
	}
}

// Reset starts over for a different list (new page, filter or sort).
func (n *Navigator) Reset(count int) {
	if count < 0 {
		count = 0
	}
	n.count = count
	n.index = Initialize(count)
}

// Select moves the selection directly, for hotkeys. It returns false and
// leaves the index alone when i is out of range.
func (n *Navigator) Select(i int) bool {
	if i < 0 || i >= n.count {
		return false
	}
	n.index = i
	return true
}

// HandleKey applies one key press.
func (n *Navigator) HandleKey(msg tea.KeyMsg) Outcome {
	out := Outcome{Index: n.index}
	if n.focus != nil && n.focus().Editable() {
		return out
	}

	k := n.keys.Classify(msg)
	switch k {
	case KeyDown, KeyUp:
		if n.count == 0 {
			return out
		}
		old := n.index
		n.index = Step(k, n.index, n.count)
		out.Handled = true
		out.Changed = old != n.index
		out.Index = n.index
	case KeyCommit:
		// A stale index left behind by a shrinking list is not committed.
		if !n.Selected() {
			return out
		}
		out.Handled = true
		if n.onCommit != nil {
			out.Cmd = n.onCommit(n.index)
		}
	case KeyCancel:
		if n.onCancel == nil {
			return out
		}
		out.Handled = true
		out.Cmd = n.onCancel()
	}
	return out
}
