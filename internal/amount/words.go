package amount

import (
	"strings"

	"ledgerdesk/internal/domain"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Words spells p out in the Indian numbering system, e.g.
// "Rupees One Lakh Twenty Three Thousand Four Hundred Fifty Six and
// Seventy Eight Paise Only".
func Words(p domain.Paise) string {
	prefix := ""
	if p < 0 {
		prefix = "Minus "
	}
	abs := int64(p.Abs())
	rupees, paise := abs/100, abs%100

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(Integer(rupees))
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(belowHundred(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// Integer spells a non-negative whole number using crore, lakh, thousand and
// hundred. Amounts of a hundred crore and above repeat "Crore".
func Integer(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	if crore := n / 10000000; crore > 0 {
		parts = append(parts, Integer(crore), "Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, belowHundred(lakh), "Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, belowHundred(thousand), "Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, ones[hundred], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
