package cmd

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/ui"
)

// eventForwarder hands bus events to the program from its own goroutine so
// bus handlers never block on the UI. The channel is never closed; stop
// signals quit instead, so late handlers can still call forward safely.
type eventForwarder struct {
	events chan eventbus.DomainEvent
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newEventForwarder(size int, send func(tea.Msg)) *eventForwarder {
	f := &eventForwarder{
		events: make(chan eventbus.DomainEvent, size),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(f.done)
		for {
			select {
			case <-f.quit:
				return
			case e := <-f.events:
				send(ui.EventMsg{Event: e})
			}
		}
	}()
	return f
}

// forward queues e, dropping it when the queue is full or after stop.
func (f *eventForwarder) forward(e eventbus.DomainEvent) {
	select {
	case <-f.quit:
		return
	default:
	}
	select {
	case f.events <- e:
	case <-f.quit:
	default:
		slog.Warn("event channel full, dropping event", "type", e.Type())
	}
}

// stop ends the delivery goroutine and waits for it.
func (f *eventForwarder) stop() {
	f.once.Do(func() { close(f.quit) })
	<-f.done
}
