package exporter

import (
	"fmt"
	"strings"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Values like 13.4 should appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatPercent renders a percentage with two decimals and a % suffix.
func formatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f)
}

// Formatter renders monetary amounts. Source amounts are rupees; the
// exchange rate converts to US dollars for the secondary column.
type Formatter struct {
	ExchangeRate float64
}

// NewFormatter creates a formatter with the given INR per USD rate.
func NewFormatter(exchangeRate float64) *Formatter {
	return &Formatter{ExchangeRate: exchangeRate}
}

// Rupees formats an amount in rupees with thousands separators.
func (f *Formatter) Rupees(amount float64) string {
	return "₹" + groupThousands(amount)
}

// USD converts rupees to dollars at the configured rate.
func (f *Formatter) USD(amount float64) string {
	if f.ExchangeRate <= 0 {
		return "$0.00"
	}
	return "$" + groupThousands(amount/f.ExchangeRate)
}

// groupThousands formats with two decimals and comma-separated groups,
// e.g. 1234567.5 -> "1,234,567.50".
func groupThousands(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
