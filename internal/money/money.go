// Package money rounds and formats amounts for display.
//
// The calculator works in float64 and never rounds. Rounding to minor units
// happens here, on the way out, using decimal arithmetic so that 0.1+0.2 is
// shown as 0.30 and not 0.30000000000000004.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places shown for an amount.
const MinorUnits = 2

// Round returns amount rounded half away from zero to two decimal places.
func Round(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(MinorUnits).Float64()
	return f
}

// Sum adds amounts in decimal, avoiding float drift over long expense lists.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}

// Format renders amount with two decimals followed by the currency code,
// e.g. "1234.50 EUR". Values that round to zero are shown without a sign.
func Format(amount float64, currency string) string {
	d := decimal.NewFromFloat(amount).Round(MinorUnits)
	if d.IsZero() {
		d = decimal.Zero
	}
	s := d.StringFixed(MinorUnits)
	if currency = strings.TrimSpace(currency); currency != "" {
		s += " " + currency
	}
	return s
}

// Parse reads a user-entered amount. Both "12.50" and "12,50" are accepted.
func Parse(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Round(MinorUnits).Float64()
	return f, nil
}
