// Package mathutil provides the rounding, tolerance and rate helpers shared by
// the amortization engine and its adapters.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within one cent)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value, e.g. ApplyPercentage(200, 5) == 10.
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MonthlyRate converts an annual percentage into the periodic monthly rate as a
// fraction, e.g. 6 -> 0.005.
func MonthlyRate(annualPercentage float64) float64 {
	return annualPercentage / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Compound grows base by an annual percentage compounded monthly over the given
// number of months.
func Compound(base, annualPercentage float64, months int) float64 {
	return base * math.Pow(1+MonthlyRate(annualPercentage), float64(months))
}
