package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoucherPagePages(t *testing.T) {
	assert.Equal(t, 1, VoucherPage{}.Pages())
	assert.Equal(t, 3, VoucherPage{Size: 10, Total: 21}.Pages())
	assert.Equal(t, 2, VoucherPage{Size: 10, Total: 20}.Pages())
	assert.True(t, VoucherPage{Page: 1, Size: 10, Total: 11}.HasNext())
	assert.False(t, VoucherPage{Page: 2, Size: 10, Total: 11}.HasNext())
}

func TestVoucherAmountAndParticulars(t *testing.T) {
	v := Voucher{
		Type: VoucherPayment,
		Entries: []Entry{
			{Ledger: "Rent", Debit: Rupees(15000, 0)},
			{Ledger: "HDFC Bank", Credit: Rupees(15000, 0)},
		},
	}
	assert.Equal(t, Paise(1500000), v.Amount())
	assert.Equal(t, "Rent", v.Particulars())

	sale := Voucher{
		Type: VoucherSales,
		Entries: []Entry{
			{Ledger: "Sales", Credit: 500},
			{Ledger: "Acme Traders", Debit: 500},
		},
	}
	assert.Equal(t, "Acme Traders", sale.Particulars())
}

func TestRupees(t *testing.T) {
	assert.Equal(t, Paise(12345), Rupees(123, 45))
	assert.Equal(t, Paise(-12345), Rupees(-123, 45))
	assert.Equal(t, Paise(12345), Paise(-12345).Abs())
}

func TestNewLedgerValidate(t *testing.T) {
	assert.Error(t, NewLedger{Group: "Sundry Debtors"}.Validate())
	assert.Error(t, NewLedger{Name: "Acme"}.Validate())
	assert.NoError(t, NewLedger{Name: "Acme", Group: "Sundry Debtors"}.Validate())
}

func TestTrialBalanceBalanced(t *testing.T) {
	assert.True(t, TrialBalance{TotalDebit: 100, TotalCredit: 100}.Balanced())
	assert.False(t, TrialBalance{TotalDebit: 100, TotalCredit: 90}.Balanced())
}

func TestStatementClosingBalance(t *testing.T) {
	s := LedgerStatement{Ledger: Ledger{OpeningBalance: 700}}
	assert.Equal(t, Paise(700), s.ClosingBalance())
	s.Lines = []StatementLine{{Balance: 800}, {Balance: 650}}
	assert.Equal(t, Paise(650), s.ClosingBalance())
}
