package domain

import (
	"strconv"
	"strings"
)

// ParseMoney normalizes a locale-formatted monetary string ("12,500.00",
// "INR 50,000", "₹1,00,000") to a plain float. Malformed values become 0 so
// dirty upstream rows never take a pipeline down.
func ParseMoney(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',':
			// thousands separator
		default:
			// currency markers and unit suffixes
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// PremiumValue is the cleansed premium for display and cart math.
func (p Policy) PremiumValue() float64 {
	return ParseMoney(p.PremiumAmount)
}

// SumAssuredValue is the cleansed sum assured.
func (p Policy) SumAssuredValue() float64 {
	return ParseMoney(p.SumAssured)
}
