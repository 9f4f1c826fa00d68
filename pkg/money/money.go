package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Monetary amounts are carried as int64 minor units (paise) everywhere
// inside the application; decimals exist only at the JSON boundary.
// Repeated add/remove cycles on a draft order must not drift by a paisa,
// which rules out binary floating point for the running amounts.

// FromDecimal converts a boundary decimal value (e.g. 10.5) to minor units.
func FromDecimal(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromFloat converts a JSON number to minor units.
func FromFloat(f float64) int64 {
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromString parses a decimal string ("10.00") into minor units.
func FromString(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// ToDecimal converts minor units back to a decimal value.
func ToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// ToFloat converts minor units to a float for JSON responses.
func ToFloat(minor int64) float64 {
	f, _ := ToDecimal(minor).Float64()
	return f
}

// Format renders minor units with two decimal places ("40.00").
func Format(minor int64) string {
	return ToDecimal(minor).StringFixed(2)
}
