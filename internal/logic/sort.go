package logic

import (
	"sort"
	"strings"

	"ledgerdesk/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByName SortMode = iota
	SortByBalance
	SortByGroup
)

// String returns the label shown in the status bar.
func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByBalance:
		return "balance"
	case SortByGroup:
		return "group"
	}
	return "unknown"
}

// Next cycles name -> balance -> group -> name.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// SortLedgers sorts ledgers in place. Balance sorts by magnitude, largest
// first. Ties fall back to the name.
func SortLedgers(ledgers []domain.Ledger, mode SortMode) {
	byName := func(i, j int) bool {
		return strings.ToLower(ledgers[i].Name) < strings.ToLower(ledgers[j].Name)
	}
	switch mode {
	case SortByBalance:
		sort.SliceStable(ledgers, func(i, j int) bool {
			a, b := ledgers[i].Balance.Abs(), ledgers[j].Balance.Abs()
			if a != b {
				return a > b
			}
			return byName(i, j)
		})
	case SortByGroup:
		sort.SliceStable(ledgers, func(i, j int) bool {
			a, b := strings.ToLower(ledgers[i].Group), strings.ToLower(ledgers[j].Group)
			if a != b {
				return a < b
			}
			return byName(i, j)
		})
	default:
		sort.SliceStable(ledgers, byName)
	}
}
