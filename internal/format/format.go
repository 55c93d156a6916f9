// Package format renders game numbers for display: SI-suffixed large
// values, currency, and magnitude-scaled crypto amounts.
package format

import (
	"fmt"
	"math"
)

var siSymbols = []string{"", "k", "M", "B", "T", "q", "Q", "s", "S"}

// Number shortens a value with SI-style suffixes past 1000; values beyond
// the suffix table fall back to scientific notation.
func Number(num float64) string {
	if math.Abs(num) < 1000 {
		return fmt.Sprintf("%.2f", num)
	}
	tier := int(math.Floor(math.Log10(math.Abs(num)) / 3))
	if tier >= len(siSymbols) {
		return fmt.Sprintf("%.2e", num)
	}
	scaled := num / math.Pow(10, float64(tier*3))
	return fmt.Sprintf("%.3f%s", scaled, siSymbols[tier])
}

// Currency prints exact dollars below 10k and the shortened form above.
func Currency(num float64) string {
	if math.Abs(num) < 10_000 {
		return fmt.Sprintf("$%.2f", num)
	}
	return "$" + Number(num)
}

// CryptoAmount scales precision with magnitude so dust amounts stay
// readable.
func CryptoAmount(num float64) string {
	if num == 0 {
		return "0.00"
	}
	if math.Abs(num) < 0.0001 {
		return fmt.Sprintf("%.2e", num)
	}
	digits := -int(math.Floor(math.Log10(math.Abs(num)))) + 4
	if digits < 2 {
		digits = 2
	}
	if digits > 8 {
		digits = 8
	}
	return fmt.Sprintf("%.*f", digits, num)
}
