package formatting

import (
	"github.com/shopspring/decimal"
)

// Percentage is part/whole*100 rounded to one decimal place. A zero whole
// yields zero.
func Percentage(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(whole)), 1)
}

// FormatPercent renders p with exactly one decimal, e.g. "66.7%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
