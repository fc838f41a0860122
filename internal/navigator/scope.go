package navigator

import tea "github.com/charmbracelet/bubbletea"

// Scope routes key presses to exactly one navigator: the most recently
// attached one that has not been detached yet. A view attaches its
// navigator when it mounts and calls the returned detach func on every
// way out.
type Scope struct {
	entries []scopeEntry
	nextID  uint64
}

type scopeEntry struct {
	id  uint64
	nav *Navigator
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Attach makes n the active navigator. The returned func detaches it and is
// safe to call more than once.
func (s *Scope) Attach(n *Navigator) (detach func()) {
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, scopeEntry{id: id, nav: n})
	return func() { s.detach(id) }
}

func (s *Scope) detach(id uint64) {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Active returns the navigator receiving keys, or nil.
func (s *Scope) Active() *Navigator {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].nav
}

// Len returns the number of attached navigators.
func (s *Scope) Len() int {
	return len(s.entries)
}

// Dispatch hands msg to the active navigator. With nothing attached the key
// is reported as unhandled.
func (s *Scope) Dispatch(msg tea.KeyMsg) Outcome {
	n := s.Active()
	if n == nil {
		return Outcome{Index: NoSelection}
	}
	return n.HandleKey(msg)
}
