// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/pkg/datetime"
)

// ValidateStartDate checks that a first payment month is a YYYY-MM date.
func ValidateStartDate(startDate string) error {
	if _, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, 0); err != nil {
		return fmt.Errorf("start date %q is not in %s format", startDate, datetime.DateTimeLayout)
	}
	return nil
}
