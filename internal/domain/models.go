package domain

import (
	"fmt"
	"time"
)

// Paise is an amount of money in the smallest currency unit (1/100 rupee).
type Paise int64

// Rupees builds an amount from whole rupees and paise.
func Rupees(rupees int64, paise int64) Paise {
	if rupees < 0 {
		return Paise(rupees*100 - paise)
	}
	return Paise(rupees*100 + paise)
}

// Abs returns the magnitude of p.
func (p Paise) Abs() Paise {
	if p < 0 {
		return -p
	}
	return p
}

// Nature is the top-level classification of an account group.
type Nature string

const (
	NatureAssets      Nature = "assets"
	NatureLiabilities Nature = "liabilities"
	NatureIncome      Nature = "income"
	NatureExpenses    Nature = "expenses"
)

// Valid reports whether n is one of the four natures.
func (n Nature) Valid() bool {
	switch n {
	case NatureAssets, NatureLiabilities, NatureIncome, NatureExpenses:
		return true
	}
	return false
}

// AccountGroup is a node of the chart of accounts (e.g. "Sundry Debtors").
type AccountGroup struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Nature Nature `json:"nature"`
	Parent string `json:"parent,omitempty"`
}

// Ledger is an account that vouchers post to. Balances are positive for
// debit and negative for credit.
type Ledger struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Group          string `json:"group"`
	OpeningBalance Paise  `json:"opening_balance"`
	Balance        Paise  `json:"balance"`
}

// NewLedger is the payload for creating a ledger.
type NewLedger struct {
	Name           string `json:"name"`
	Group          string `json:"group"`
	OpeningBalance Paise  `json:"opening_balance"`
}

// Validate checks the fields a ledger cannot be created without.
func (l NewLedger) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("ledger name is required")
	}
	if l.Group == "" {
		return fmt.Errorf("ledger group is required")
	}
	return nil
}

// VoucherType is the kind of accounting transaction.
type VoucherType string

const (
	VoucherPayment  VoucherType = "payment"
	VoucherReceipt  VoucherType = "receipt"
	VoucherContra   VoucherType = "contra"
	VoucherJournal  VoucherType = "journal"
	VoucherSales    VoucherType = "sales"
	VoucherPurchase VoucherType = "purchase"
)

// Short returns the abbreviation used in day book columns.
func (t VoucherType) Short() string {
	switch t {
	case VoucherPayment:
		return "Pymt"
	case VoucherReceipt:
		return "Rcpt"
	case VoucherContra:
		return "Ctra"
	case VoucherJournal:
		return "Jrnl"
	case VoucherSales:
		return "Sale"
	case VoucherPurchase:
		return "Purc"
	default:
		return string(t)
	}
}

// Entry is one debit or credit line of a voucher.
type Entry struct {
	Ledger string `json:"ledger"`
	Debit  Paise  `json:"debit,omitempty"`
	Credit Paise  `json:"credit,omitempty"`
}

// Voucher is a posted transaction.
type Voucher struct {
	ID        string      `json:"id"`
	Number    string      `json:"number"`
	Date      time.Time   `json:"date"`
	Type      VoucherType `json:"type"`
	Narration string      `json:"narration,omitempty"`
	Entries   []Entry     `json:"entries"`
}

// Amount is the total debited by the voucher.
func (v Voucher) Amount() Paise {
	var total Paise
	for _, e := range v.Entries {
		total += e.Debit
	}
	return total
}

// Particulars names the ledger shown in list views: the first credited
// ledger for payments, otherwise the first debited one.
func (v Voucher) Particulars() string {
	for _, e := range v.Entries {
		if v.Type == VoucherPayment && e.Credit == 0 {
			return e.Ledger
		}
		if v.Type != VoucherPayment && e.Debit > 0 {
			return e.Ledger
		}
	}
	if len(v.Entries) > 0 {
		return v.Entries[0].Ledger
	}
	return ""
}

// VoucherPage is one page of the day book.
type VoucherPage struct {
	Items []Voucher `json:"items"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Total int       `json:"total"`
}

// Pages returns the number of pages for the current page size.
func (p VoucherPage) Pages() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// HasNext reports whether a page follows this one.
func (p VoucherPage) HasNext() bool {
	return p.Page < p.Pages()
}

// StatementLine is one row of a ledger statement with the running balance.
type StatementLine struct {
	Date        time.Time   `json:"date"`
	Number      string      `json:"number"`
	Type        VoucherType `json:"type"`
	Particulars string      `json:"particulars"`
	Debit       Paise       `json:"debit"`
	Credit      Paise       `json:"credit"`
	Balance     Paise       `json:"balance"`
}

// LedgerStatement lists a ledger's postings.
type LedgerStatement struct {
	Ledger Ledger          `json:"ledger"`
	Lines  []StatementLine `json:"lines"`
}

// ClosingBalance is the balance after the last line, or the opening balance.
func (s LedgerStatement) ClosingBalance() Paise {
	if len(s.Lines) == 0 {
		return s.Ledger.OpeningBalance
	}
	return s.Lines[len(s.Lines)-1].Balance
}

// TrialBalanceRow is one ledger's closing balance split by side.
type TrialBalanceRow struct {
	LedgerID string `json:"ledger_id"`
	Ledger   string `json:"ledger"`
	Group    string `json:"group"`
	Debit    Paise  `json:"debit"`
	Credit   Paise  `json:"credit"`
}

// TrialBalance is the list of closing balances of all ledgers.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  Paise             `json:"total_debit"`
	TotalCredit Paise             `json:"total_credit"`
}

// Balanced reports whether debits equal credits.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit == tb.TotalCredit
}
