package logic

import (
	"strings"

	"ledgerdesk/internal/domain"
)

// MatchesFilter checks if a ledger matches the given filter query.
//
//	group:<name>  ledgers whose group name contains <name>
//	dr / cr       ledgers with a debit or credit balance
//	zero          ledgers with a nil balance
//	anything else substring of the ledger or group name
func MatchesFilter(l domain.Ledger, filterQuery string) bool {
	query := strings.ToLower(strings.TrimSpace(filterQuery))
	if query == "" {
		return true
	}

	if strings.HasPrefix(query, "group:") {
		group := strings.TrimSpace(strings.TrimPrefix(query, "group:"))
		return strings.Contains(strings.ToLower(l.Group), group)
	}

	switch query {
	case "dr":
		return l.Balance > 0
	case "cr":
		return l.Balance < 0
	case "zero":
		return l.Balance == 0
	}

	return strings.Contains(strings.ToLower(l.Name), query) ||
		strings.Contains(strings.ToLower(l.Group), query)
}

// FilterLedgers returns the ledgers matching query, keeping their order.
func FilterLedgers(ledgers []domain.Ledger, query string) []domain.Ledger {
	result := make([]domain.Ledger, 0, len(ledgers))
	for _, l := range ledgers {
		if MatchesFilter(l, query) {
			result = append(result, l)
		}
	}
	return result
}
