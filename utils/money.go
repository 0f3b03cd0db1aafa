package utils

import (
	"github.com/shopspring/decimal"
)

// Amounts are stored and computed as integer cents; decimals exist only
// at the JSON boundary.

// CentsFromFloat converts an API amount (e.g. 25.5) to cents without
// accumulating binary float error.
func CentsFromFloat(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CentsToFloat renders cents as a two-decimal amount for responses.
func CentsToFloat(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}
