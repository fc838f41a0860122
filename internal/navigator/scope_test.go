package navigator

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeRoutesToLatestOnly(t *testing.T) {
	s := NewScope()
	outer := New(5)
	inner := New(5)

	detachOuter := s.Attach(outer)
	defer detachOuter()
	detachInner := s.Attach(inner)

	s.Dispatch(down)
	assert.Equal(t, 0, outer.Index())
	assert.Equal(t, 1, inner.Index())

	detachInner()
	s.Dispatch(down)
	assert.Equal(t, 1, outer.Index())
	assert.Equal(t, 1, inner.Index())
}

func TestScopeDetachIsIdempotent(t *testing.T) {
	s := NewScope()
	a := New(1)
	b := New(1)
	detachA := s.Attach(a)
	detachB := s.Attach(b)

	detachA()
	detachA()
	require.Equal(t, 1, s.Len())
	assert.Same(t, b, s.Active())

	detachB()
	assert.Nil(t, s.Active())
	assert.Zero(t, s.Len())
}

func TestScopeDetachOnPanic(t *testing.T) {
	s := NewScope()
	n := New(2, WithCommit(func(int) tea.Cmd { panic("callback failed") }))

	func() {
		defer func() { _ = recover() }()
		detach := s.Attach(n)
		defer detach()
		s.Dispatch(enter)
	}()

	assert.Zero(t, s.Len())
}

func TestScopeEmpty(t *testing.T) {
	out := NewScope().Dispatch(down)
	assert.False(t, out.Handled)
	assert.Equal(t, NoSelection, out.Index)
}
