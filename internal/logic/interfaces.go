package logic

import "ledgerdesk/internal/domain"

// LedgerStore provides access to cached ledgers
type LedgerStore interface {
	GetLedger(id string) (domain.Ledger, bool)
	GetAllLedgers() []domain.Ledger
	ReplaceLedgers(ledgers []domain.Ledger)
	PutLedger(ledger domain.Ledger)
}

// GroupStore provides access to cached account groups
type GroupStore interface {
	GetGroup(name string) (domain.AccountGroup, bool)
	GetAllGroups() []domain.AccountGroup
	ReplaceGroups(groups []domain.AccountGroup)
}
