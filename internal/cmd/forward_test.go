package cmd

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/ui"
)

type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sink) send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *sink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func TestEventForwarderDelivers(t *testing.T) {
	var s sink
	f := newEventForwarder(4, s.send)
	defer f.stop()

	f.forward(eventbus.DataLoadedEvent{RequestID: 7, Kind: domain.KindLedgers})
	require.Eventually(t, func() bool { return s.len() == 1 }, time.Second, 5*time.Millisecond)

	s.mu.Lock()
	msg, ok := s.msgs[0].(ui.EventMsg)
	s.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, uint64(7), msg.Event.(eventbus.DataLoadedEvent).RequestID)
}

func TestEventForwarderIgnoresLateEvents(t *testing.T) {
	var s sink
	f := newEventForwarder(1, s.send)
	f.stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() {
				f.forward(eventbus.FetchFailedEvent{Kind: domain.KindLedgers, Err: assert.AnError})
			})
		}()
	}
	wg.Wait()
	assert.Zero(t, s.len())

	assert.NotPanics(t, f.stop, "stop twice")
}
