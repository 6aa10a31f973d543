package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AcceptsInputRune reports whether r may be typed into a numeric form field.
// A minus sign is only accepted as the first character of fields that allow
// negative values.
func AcceptsInputRune(current string, r rune, allowNegative bool) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.':
		return !strings.Contains(current, ".")
	case r == '-':
		return allowNegative && current == ""
	}
	return false
}

// ParseAmount parses a numeric form field. Thousands separators and a leading
// dollar sign are tolerated.
func ParseAmount(field, text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", field, text)
	}
	return value, nil
}

// ParseNumber is ParseAmount converted to a float64.
func ParseNumber(field, text string) (float64, error) {
	value, err := ParseAmount(field, text)
	if err != nil {
		return 0, err
	}
	return value.InexactFloat64(), nil
}
