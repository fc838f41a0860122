// Package amount formats and parses rupee amounts the way Indian accounts
// are written: lakh/crore digit grouping and amounts in words.
package amount

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ledgerdesk/internal/domain"
)

// ErrSyntax is returned by Parse for input that is not an amount.
var ErrSyntax = errors.New("invalid amount")

// Symbol is prefixed by Format.
const Symbol = "₹"

// Format renders p as ₹12,34,567.89.
func Format(p domain.Paise) string {
	return Symbol + Plain(p)
}

// Plain renders p as 12,34,567.89 without the currency symbol.
func Plain(p domain.Paise) string {
	sign := ""
	if p < 0 {
		sign = "-"
	}
	abs := p.Abs()
	return fmt.Sprintf("%s%s.%02d", sign, group(int64(abs)/100), int64(abs)%100)
}

// DrCr renders a signed balance as "12,345.00 Dr" or "12,345.00 Cr".
func DrCr(p domain.Paise) string {
	switch {
	case p > 0:
		return Plain(p) + " Dr"
	case p < 0:
		return Plain(p.Abs()) + " Cr"
	default:
		return Plain(0)
	}
}

// group inserts separators: the last three digits, then pairs.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// Parse reads "1,23,456.5", "₹ 99", "-12.05" into paise. At most two
// decimal places are accepted.
func Parse(s string) (domain.Paise, error) {
	in := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, in)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, in)
	}
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, in)
		}
	}
	for len(frac) < 2 {
		frac += "0"
	}

	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || rupees > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, in)
	}
	paise, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, in)
	}

	total := domain.Paise(rupees*100 + paise)
	if neg {
		total = -total
	}
	return total, nil
}
