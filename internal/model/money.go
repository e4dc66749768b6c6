package model

import "github.com/shopspring/decimal"

// FormatUSD renders an amount for display with a dollar sign and exactly two
// decimal places: 0 -> "$0.00", 100.5 -> "$100.50".
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
