package logic

import (
	"sort"
	"strings"
	"sync"

	"ledgerdesk/internal/domain"
)

// MemoryLedgerStore is an in-memory implementation of LedgerStore. It
// remembers insertion order so listings are stable between refreshes.
type MemoryLedgerStore struct {
	mu      sync.RWMutex
	ledgers map[string]domain.Ledger
	order   []string
}

// NewMemoryLedgerStore creates a new memory-based ledger store
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		ledgers: make(map[string]domain.Ledger),
	}
}

func (s *MemoryLedgerStore) GetLedger(id string) (domain.Ledger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[id]
	return l, ok
}

func (s *MemoryLedgerStore) GetAllLedgers() []domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Ledger, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.ledgers[id])
	}
	return result
}

// ReplaceLedgers drops the cache and stores ledgers in the given order.
func (s *MemoryLedgerStore) ReplaceLedgers(ledgers []domain.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers = make(map[string]domain.Ledger, len(ledgers))
	s.order = s.order[:0]
	for _, l := range ledgers {
		if _, dup := s.ledgers[l.ID]; !dup {
			s.order = append(s.order, l.ID)
		}
		s.ledgers[l.ID] = l
	}
}

// PutLedger inserts or updates one ledger.
func (s *MemoryLedgerStore) PutLedger(ledger domain.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ledgers[ledger.ID]; !ok {
		s.order = append(s.order, ledger.ID)
	}
	s.ledgers[ledger.ID] = ledger
}

// MemoryGroupStore is an in-memory implementation of GroupStore keyed by
// group name.
type MemoryGroupStore struct {
	mu     sync.RWMutex
	groups map[string]domain.AccountGroup
}

// NewMemoryGroupStore creates a new memory-based group store
func NewMemoryGroupStore() *MemoryGroupStore {
	return &MemoryGroupStore{
		groups: make(map[string]domain.AccountGroup),
	}
}

func (s *MemoryGroupStore) GetGroup(name string) (domain.AccountGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[name]
	return g, ok
}

// GetAllGroups returns the groups sorted by nature, then name.
func (s *MemoryGroupStore) GetAllGroups() []domain.AccountGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AccountGroup, 0, len(s.groups))
	for _, g := range s.groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Nature != result[j].Nature {
			return natureRank(result[i].Nature) < natureRank(result[j].Nature)
		}
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result
}

func (s *MemoryGroupStore) ReplaceGroups(groups []domain.AccountGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = make(map[string]domain.AccountGroup, len(groups))
	for _, g := range groups {
		s.groups[g.Name] = g
	}
}

// GroupNames returns all group names in GetAllGroups order.
func (s *MemoryGroupStore) GroupNames() []string {
	groups := s.GetAllGroups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func natureRank(n domain.Nature) int {
	switch n {
	case domain.NatureAssets:
		return 0
	case domain.NatureLiabilities:
		return 1
	case domain.NatureIncome:
		return 2
	case domain.NatureExpenses:
		return 3
	}
	return 4
}
