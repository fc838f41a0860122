package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdesk/internal/api"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/logic"
)

type fakeBackend struct {
	ledgers   []domain.Ledger
	groups    []domain.AccountGroup
	err       error
	lastPage  int
	lastSize  int
	statement string
}

func (f *fakeBackend) Groups(context.Context) ([]domain.AccountGroup, error) {
	return f.groups, f.err
}

func (f *fakeBackend) Ledgers(context.Context) ([]domain.Ledger, error) {
	return f.ledgers, f.err
}

func (f *fakeBackend) CreateLedger(_ context.Context, nl domain.NewLedger) (domain.Ledger, error) {
	if f.err != nil {
		return domain.Ledger{}, f.err
	}
	return domain.Ledger{ID: "new", Name: nl.Name, Group: nl.Group}, nil
}

func (f *fakeBackend) Vouchers(_ context.Context, page, size int) (domain.VoucherPage, error) {
	f.lastPage, f.lastSize = page, size
	return domain.VoucherPage{Page: page, Size: size}, f.err
}

func (f *fakeBackend) LedgerStatement(_ context.Context, id string) (domain.LedgerStatement, error) {
	f.statement = id
	return domain.LedgerStatement{Ledger: domain.Ledger{ID: id}}, f.err
}

func (f *fakeBackend) TrialBalance(context.Context) (domain.TrialBalance, error) {
	return domain.TrialBalance{TotalDebit: 5, TotalCredit: 5}, f.err
}

type harness struct {
	bus     eventbus.EventBus
	svc     *Service
	ledgers *logic.MemoryLedgerStore
	events  chan eventbus.DomainEvent
}

func newHarness(t *testing.T, backend Backend) *harness {
	t.Helper()
	h := &harness{
		bus:     eventbus.New(),
		ledgers: logic.NewMemoryLedgerStore(),
		events:  make(chan eventbus.DomainEvent, 10),
	}
	h.svc = NewService(h.bus, backend, h.ledgers, logic.NewMemoryGroupStore(), Config{PageSize: 7})
	for _, et := range []eventbus.EventType{
		eventbus.EventDataLoaded, eventbus.EventFetchFailed,
		eventbus.EventLedgerCreated, eventbus.EventSessionExpired,
	} {
		h.bus.Subscribe(et, func(e eventbus.DomainEvent) { h.events <- e })
	}
	t.Cleanup(func() {
		h.svc.Close()
		h.bus.Close()
	})
	return h
}

func (h *harness) next(t *testing.T) eventbus.DomainEvent {
	t.Helper()
	select {
	case e := <-h.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
		return nil
	}
}

func TestFetchLedgersFillsStore(t *testing.T) {
	backend := &fakeBackend{ledgers: []domain.Ledger{{ID: "a", Name: "Cash"}, {ID: "b", Name: "Bank"}}}
	h := newHarness(t, backend)

	h.bus.Publish(eventbus.FetchRequestedEvent{RequestID: 3, Kind: domain.KindLedgers})
	e := h.next(t)

	loaded, ok := e.(eventbus.DataLoadedEvent)
	require.True(t, ok, "got %T", e)
	assert.Equal(t, uint64(3), loaded.RequestID)
	assert.Len(t, loaded.Data.([]domain.Ledger), 2)
	assert.Len(t, h.ledgers.GetAllLedgers(), 2)
}

func TestFetchVouchersDefaultsPaging(t *testing.T) {
	backend := &fakeBackend{}
	h := newHarness(t, backend)

	h.bus.Publish(eventbus.FetchRequestedEvent{RequestID: 1, Kind: domain.KindVouchers})
	loaded := h.next(t).(eventbus.DataLoadedEvent)
	page := loaded.Data.(domain.VoucherPage)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 7, page.Size)
}

func TestFetchStatementNeedsLedger(t *testing.T) {
	h := newHarness(t, &fakeBackend{})

	h.bus.Publish(eventbus.FetchRequestedEvent{RequestID: 9, Kind: domain.KindStatement})
	failed, ok := h.next(t).(eventbus.FetchFailedEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(9), failed.RequestID)
	assert.Error(t, failed.Err)
}

func TestFetchUnknownKind(t *testing.T) {
	h := newHarness(t, &fakeBackend{})
	h.bus.Publish(eventbus.FetchRequestedEvent{RequestID: 2, Kind: "bogus"})
	_, ok := h.next(t).(eventbus.FetchFailedEvent)
	assert.True(t, ok)
}

func TestUnauthorizedExpiresSession(t *testing.T) {
	h := newHarness(t, &fakeBackend{err: &api.Error{StatusCode: 401}})
	h.bus.Publish(eventbus.FetchRequestedEvent{RequestID: 4, Kind: domain.KindTrialBalance})

	var sawFailed, sawExpired bool
	for i := 0; i < 2; i++ {
		switch h.next(t).(type) {
		case eventbus.FetchFailedEvent:
			sawFailed = true
		case eventbus.SessionExpiredEvent:
			sawExpired = true
		}
	}
	assert.True(t, sawFailed)
	assert.True(t, sawExpired)
}

func TestCreateLedger(t *testing.T) {
	h := newHarness(t, &fakeBackend{})
	h.bus.Publish(eventbus.LedgerCreateRequestedEvent{RequestID: 5, Ledger: domain.NewLedger{Name: "Phone", Group: "Indirect Expenses"}})

	created, ok := h.next(t).(eventbus.LedgerCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "Phone", created.Ledger.Name)
	_, stored := h.ledgers.GetLedger("new")
	assert.True(t, stored)
}

func TestCreateLedgerFailure(t *testing.T) {
	h := newHarness(t, &fakeBackend{err: errors.New("boom")})
	h.bus.Publish(eventbus.LedgerCreateRequestedEvent{RequestID: 6, Ledger: domain.NewLedger{Name: "X", Group: "Y"}})

	failed, ok := h.next(t).(eventbus.FetchFailedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.KindCreateLedger, failed.Kind)
}
