// Package fetch loads data from the backend in response to bus requests.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ledgerdesk/internal/api"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/logic"
)

// Backend is the subset of *api.Client the service calls.
type Backend interface {
	Groups(ctx context.Context) ([]domain.AccountGroup, error)
	Ledgers(ctx context.Context) ([]domain.Ledger, error)
	CreateLedger(ctx context.Context, l domain.NewLedger) (domain.Ledger, error)
	Vouchers(ctx context.Context, page, size int) (domain.VoucherPage, error)
	LedgerStatement(ctx context.Context, ledgerID string) (domain.LedgerStatement, error)
	TrialBalance(ctx context.Context) (domain.TrialBalance, error)
}

// Service turns FetchRequested and LedgerCreateRequested events into
// backend calls and publishes the outcome.
type Service struct {
	bus      eventbus.EventBus
	backend  Backend
	ledgers  logic.LedgerStore
	groups   logic.GroupStore
	timeout  time.Duration
	pageSize int

	workerPool chan struct{}
	wg         sync.WaitGroup
	unsubs     []func()
}

// Config holds the Service settings.
type Config struct {
	Timeout     time.Duration
	PageSize    int
	Concurrency int
}

// NewService creates a fetch service and subscribes it to the bus.
func NewService(bus eventbus.EventBus, backend Backend, ledgers logic.LedgerStore, groups logic.GroupStore, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	s := &Service{
		bus:        bus,
		backend:    backend,
		ledgers:    ledgers,
		groups:     groups,
		timeout:    cfg.Timeout,
		pageSize:   cfg.PageSize,
		workerPool: make(chan struct{}, cfg.Concurrency),
	}

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventFetchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchRequestedEvent); ok {
			s.spawn(func(ctx context.Context) { s.handleFetch(ctx, event) })
		}
	}))
	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventLedgerCreateRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LedgerCreateRequestedEvent); ok {
			s.spawn(func(ctx context.Context) { s.handleCreate(ctx, event) })
		}
	}))
	return s
}

// Close unsubscribes from the bus and waits for in-flight requests.
func (s *Service) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.wg.Wait()
}

func (s *Service) spawn(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.workerPool <- struct{}{}
		defer func() { <-s.workerPool }()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *Service) handleFetch(ctx context.Context, e eventbus.FetchRequestedEvent) {
	data, err := s.load(ctx, e)
	if err != nil {
		s.fail(e.RequestID, e.Kind, err)
		return
	}
	slog.Debug("fetch complete", "request_id", e.RequestID, "kind", e.Kind)
	s.bus.Publish(eventbus.DataLoadedEvent{RequestID: e.RequestID, Kind: e.Kind, Data: data})
}

func (s *Service) load(ctx context.Context, e eventbus.FetchRequestedEvent) (interface{}, error) {
	switch e.Kind {
	case domain.KindLedgers:
		ledgers, err := s.backend.Ledgers(ctx)
		if err != nil {
			return nil, err
		}
		s.ledgers.ReplaceLedgers(ledgers)
		return s.ledgers.GetAllLedgers(), nil
	case domain.KindGroups:
		groups, err := s.backend.Groups(ctx)
		if err != nil {
			return nil, err
		}
		s.groups.ReplaceGroups(groups)
		return s.groups.GetAllGroups(), nil
	case domain.KindVouchers:
		page, size := e.Page, e.PageSize
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = s.pageSize
		}
		return s.backend.Vouchers(ctx, page, size)
	case domain.KindStatement:
		if e.LedgerID == "" {
			return nil, fmt.Errorf("statement: no ledger selected")
		}
		return s.backend.LedgerStatement(ctx, e.LedgerID)
	case domain.KindTrialBalance:
		return s.backend.TrialBalance(ctx)
	}
	return nil, fmt.Errorf("unknown fetch kind %q", e.Kind)
}

func (s *Service) handleCreate(ctx context.Context, e eventbus.LedgerCreateRequestedEvent) {
	created, err := s.backend.CreateLedger(ctx, e.Ledger)
	if err != nil {
		s.fail(e.RequestID, domain.KindCreateLedger, err)
		return
	}
	s.ledgers.PutLedger(created)
	slog.Info("ledger created", "id", created.ID, "name", created.Name)
	s.bus.Publish(eventbus.LedgerCreatedEvent{RequestID: e.RequestID, Ledger: created})
}

func (s *Service) fail(requestID uint64, kind domain.FetchKind, err error) {
	slog.Warn("fetch failed", "request_id", requestID, "kind", kind, "error", err)
	s.bus.Publish(eventbus.FetchFailedEvent{RequestID: requestID, Kind: kind, Err: err})
	if errors.Is(err, api.ErrUnauthorized) {
		s.bus.Publish(eventbus.SessionExpiredEvent{})
	}
}
