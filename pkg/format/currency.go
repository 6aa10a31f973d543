// Package format renders money and rates for terminal output.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 2)
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeCurrency is Currency rounded to whole dollars (e.g., "$1,439"); used by
// the narrow spreadsheet columns.
func WholeCurrency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 0)
	if amount < 0 && formatted != "0" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a percentage value with up to two fractional digits and
// without trailing zeros (e.g., 6.5 -> "6.5%").
func Percent(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64) + "%"
}

func formatPositive(value float64, places int) string {
	formatted := fmt.Sprintf("%.*f", places, value)
	intPart, decPart, hasDec := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if !hasDec {
		return intPart
	}
	return intPart + "." + decPart
}
