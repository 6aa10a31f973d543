// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// PaymentDate returns the calendar month of the given 1-based payment month
// when the first payment falls in startDate.
func PaymentDate(startDate string, month int) (string, error) {
	if month < 1 {
		return "", fmt.Errorf("payment month must be at least 1, got %d", month)
	}
	return OffsetDate(startDate, DateTimeLayout, month-1)
}
