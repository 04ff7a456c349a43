package costing

import (
	"github.com/shopspring/decimal"
)

// All monetary math is fixed-point with 6 fractional digits, rounded
// half-up at each intermediate step so that recomputation over the
// same inputs always hashes identically.

var hundred = decimal.NewFromInt(100)

// Q6 quantizes to 6 fractional digits, half-up.
func Q6(d decimal.Decimal) decimal.Decimal {
	return d.Round(6)
}

// DecOr returns the pointed-to value or the given default.
func DecOr(d *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if d == nil {
		return def
	}
	return *d
}

// Fixed6 renders a decimal as a fixed 6-fraction string, the only
// representation that enters hash payloads.
func Fixed6(d decimal.Decimal) string {
	return Q6(d).StringFixed(6)
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
