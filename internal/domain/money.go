package domain

import "github.com/shopspring/decimal"

// Cents converts an integer amount of minor units into a decimal amount.
func Cents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// ToCents rounds a decimal amount to the nearest minor unit.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}
