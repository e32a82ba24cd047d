package money

import (
	"fmt"
	"math"
	"strings"
)

// ToCents converts a major-unit price (euros) to an integer number of cents.
// Non-finite inputs are treated as zero, and the result never goes negative.
func ToCents(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	cents := int64(math.Round(value * 100))
	if cents < 0 {
		return 0
	}
	return cents
}

// FromCents converts an integer cent amount back to major units for display.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// FormatEUR renders a cent amount as an Italian-locale euro string,
// e.g. 123456 -> "€1.234,56".
func FormatEUR(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s€%s,%02d", sign, b.String(), frac)
}
