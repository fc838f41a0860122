// Package mockapi serves an in-memory set of books over the same REST API
// the client speaks. It backs the mock-server command and the client tests.
package mockapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerdesk/internal/domain"
)

var (
	errDuplicateLedger = errors.New("ledger already exists")
	errUnknownGroup    = errors.New("unknown group")
	errUnknownLedger   = errors.New("unknown ledger")
)

// Book is a thread-safe chart of accounts with its posted vouchers.
type Book struct {
	mu       sync.RWMutex
	groups   []domain.AccountGroup
	ledgers  []domain.Ledger
	vouchers []domain.Voucher
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{}
}

// AddGroup appends a group to the chart of accounts.
func (b *Book) AddGroup(g domain.AccountGroup) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.groups = append(b.groups, g)
}

// Groups returns a copy of all groups.
func (b *Book) Groups() []domain.AccountGroup {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.AccountGroup, len(b.groups))
	copy(out, b.groups)
	return out
}

// Ledgers returns a copy of all ledgers in creation order.
func (b *Book) Ledgers() []domain.Ledger {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Ledger, len(b.ledgers))
	copy(out, b.ledgers)
	return out
}

// CreateLedger adds a ledger. Names are unique ignoring case and the group
// must exist.
func (b *Book) CreateLedger(nl domain.NewLedger) (domain.Ledger, error) {
	if err := nl.Validate(); err != nil {
		return domain.Ledger{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasGroupLocked(nl.Group) {
		return domain.Ledger{}, fmt.Errorf("%w: %s", errUnknownGroup, nl.Group)
	}
	for _, l := range b.ledgers {
		if strings.EqualFold(l.Name, nl.Name) {
			return domain.Ledger{}, fmt.Errorf("%w: %s", errDuplicateLedger, nl.Name)
		}
	}
	l := domain.Ledger{
		ID:             uuid.NewString(),
		Name:           nl.Name,
		Group:          nl.Group,
		OpeningBalance: nl.OpeningBalance,
		Balance:        nl.OpeningBalance,
	}
	b.ledgers = append(b.ledgers, l)
	return l, nil
}

func (b *Book) hasGroupLocked(name string) bool {
	for _, g := range b.groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Post records a voucher and updates the balances of the ledgers it names.
func (b *Book) Post(v domain.Voucher) error {
	var dr, cr domain.Paise
	for _, e := range v.Entries {
		dr += e.Debit
		cr += e.Credit
	}
	if dr != cr {
		return fmt.Errorf("voucher %s does not balance: %d != %d", v.Number, dr, cr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range v.Entries {
		if b.ledgerIndexLocked(e.Ledger) < 0 {
			return fmt.Errorf("%w: %s", errUnknownLedger, e.Ledger)
		}
	}
	for _, e := range v.Entries {
		i := b.ledgerIndexLocked(e.Ledger)
		b.ledgers[i].Balance += e.Debit - e.Credit
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	b.vouchers = append(b.vouchers, v)
	return nil
}

func (b *Book) ledgerIndexLocked(name string) int {
	for i, l := range b.ledgers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// Vouchers returns one page of vouchers, newest first. Pages start at 1.
func (b *Book) Vouchers(page, size int) domain.VoucherPage {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sorted := make([]domain.Voucher, len(b.vouchers))
	copy(sorted, b.vouchers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	vp := domain.VoucherPage{Page: page, Size: size, Total: len(sorted), Items: []domain.Voucher{}}
	start := (page - 1) * size
	if start >= len(sorted) || start < 0 {
		return vp
	}
	end := start + size
	if end > len(sorted) {
		end = len(sorted)
	}
	vp.Items = sorted[start:end]
	return vp
}

// Statement lists the postings to the ledger with the given id in date
// order with a running balance.
func (b *Book) Statement(ledgerID string) (domain.LedgerStatement, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ledger *domain.Ledger
	for i := range b.ledgers {
		if b.ledgers[i].ID == ledgerID {
			ledger = &b.ledgers[i]
			break
		}
	}
	if ledger == nil {
		return domain.LedgerStatement{}, fmt.Errorf("%w: %s", errUnknownLedger, ledgerID)
	}

	st := domain.LedgerStatement{Ledger: *ledger, Lines: []domain.StatementLine{}}
	running := ledger.OpeningBalance
	vouchers := make([]domain.Voucher, len(b.vouchers))
	copy(vouchers, b.vouchers)
	sort.SliceStable(vouchers, func(i, j int) bool {
		return vouchers[i].Date.Before(vouchers[j].Date)
	})
	for _, v := range vouchers {
		for _, e := range v.Entries {
			if e.Ledger != ledger.Name {
				continue
			}
			running += e.Debit - e.Credit
			st.Lines = append(st.Lines, domain.StatementLine{
				Date:        v.Date,
				Number:      v.Number,
				Type:        v.Type,
				Particulars: contra(v, ledger.Name),
				Debit:       e.Debit,
				Credit:      e.Credit,
				Balance:     running,
			})
		}
	}
	return st, nil
}

// contra names the first other ledger of the voucher.
func contra(v domain.Voucher, self string) string {
	for _, e := range v.Entries {
		if e.Ledger != self {
			return e.Ledger
		}
	}
	return self
}

// TrialBalance splits every non-zero ledger balance into debit and credit.
func (b *Book) TrialBalance() domain.TrialBalance {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tb := domain.TrialBalance{Rows: []domain.TrialBalanceRow{}}
	for _, l := range b.ledgers {
		if l.Balance == 0 {
			continue
		}
		row := domain.TrialBalanceRow{LedgerID: l.ID, Ledger: l.Name, Group: l.Group}
		if l.Balance > 0 {
			row.Debit = l.Balance
			tb.TotalDebit += l.Balance
		} else {
			row.Credit = -l.Balance
			tb.TotalCredit += -l.Balance
		}
		tb.Rows = append(tb.Rows, row)
	}
	return tb
}

// SeedBook returns a book with a small trading company: eight groups,
// eight ledgers and thirty vouchers starting on the given date.
func SeedBook(start time.Time) *Book {
	b := NewBook()
	for _, g := range []domain.AccountGroup{
		{ID: "g-capital", Name: "Capital Account", Nature: domain.NatureLiabilities},
		{ID: "g-bank", Name: "Bank Accounts", Nature: domain.NatureAssets},
		{ID: "g-cash", Name: "Cash-in-Hand", Nature: domain.NatureAssets},
		{ID: "g-debtors", Name: "Sundry Debtors", Nature: domain.NatureAssets},
		{ID: "g-creditors", Name: "Sundry Creditors", Nature: domain.NatureLiabilities},
		{ID: "g-sales", Name: "Sales Accounts", Nature: domain.NatureIncome},
		{ID: "g-purchase", Name: "Purchase Accounts", Nature: domain.NatureExpenses},
		{ID: "g-indirect", Name: "Indirect Expenses", Nature: domain.NatureExpenses, Parent: "Purchase Accounts"},
	} {
		b.AddGroup(g)
	}

	seed := []struct {
		id, name, group string
		opening         domain.Paise
	}{
		{"l-capital", "Capital", "Capital Account", domain.Rupees(-500000, 0)},
		{"l-hdfc", "HDFC Bank", "Bank Accounts", domain.Rupees(300000, 0)},
		{"l-cash", "Cash", "Cash-in-Hand", domain.Rupees(200000, 0)},
		{"l-sharma", "Sharma Traders", "Sundry Debtors", 0},
		{"l-gupta", "Gupta Suppliers", "Sundry Creditors", 0},
		{"l-sales", "Sales", "Sales Accounts", 0},
		{"l-purchases", "Purchases", "Purchase Accounts", 0},
		{"l-rent", "Rent", "Indirect Expenses", 0},
	}
	for _, s := range seed {
		b.ledgers = append(b.ledgers, domain.Ledger{
			ID: s.id, Name: s.name, Group: s.group,
			OpeningBalance: s.opening, Balance: s.opening,
		})
	}

	pattern := []struct {
		typ    domain.VoucherType
		dr, cr string
		text   string
	}{
		{domain.VoucherSales, "Sharma Traders", "Sales", "Goods sold on credit"},
		{domain.VoucherPurchase, "Purchases", "Gupta Suppliers", "Goods purchased on credit"},
		{domain.VoucherReceipt, "HDFC Bank", "Sharma Traders", "Received against invoice"},
		{domain.VoucherPayment, "Rent", "Cash", "Office rent"},
		{domain.VoucherContra, "Cash", "HDFC Bank", "Cash withdrawn"},
		{domain.VoucherPayment, "Gupta Suppliers", "HDFC Bank", "Paid against bill"},
	}
	for i := 0; i < 30; i++ {
		p := pattern[i%len(pattern)]
		amt := domain.Rupees(int64(1250*(i+1)), int64((i*25)%100))
		v := domain.Voucher{
			ID:        fmt.Sprintf("v-%03d", i+1),
			Number:    fmt.Sprintf("%d", i+1),
			Date:      start.AddDate(0, 0, i),
			Type:      p.typ,
			Narration: p.text,
			Entries: []domain.Entry{
				{Ledger: p.dr, Debit: amt},
				{Ledger: p.cr, Credit: amt},
			},
		}
		if err := b.Post(v); err != nil {
			panic(err)
		}
	}
	return b
}
