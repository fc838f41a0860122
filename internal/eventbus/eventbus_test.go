package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventFetchRequested, func(e DomainEvent) { got <- e })

	b.Publish(FetchRequestedEvent{RequestID: 7})

	select {
	case e := <-got:
		ev, ok := e.(FetchRequestedEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(7), ev.RequestID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) { first.Add(1) })
	done := make(chan struct{}, 2)
	b.Subscribe(EventError, func(DomainEvent) { second.Add(1); done <- struct{}{} })

	unsubscribe()
	unsubscribe()
	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	// Give a removed handler a chance to misfire.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("bad handler") })
	b.Subscribe(EventSessionExpired, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{})
	b.Publish(SessionExpiredEvent{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus stopped after handler panic")
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := New()
	b.Close()
	assert.NotPanics(t, func() { b.Publish(ErrorEvent{}) })
	assert.NotPanics(t, b.Close)
}
