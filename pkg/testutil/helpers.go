// Package testutil provides common fixtures and helpers for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
)

// ReferenceParameters is a $300,000 house with 20% down at 6% over 30 years
// and no other costs; the scheduled payment is $1,438.92.
func ReferenceParameters() mortgage.InputParameters {
	return mortgage.InputParameters{
		HouseValue:         300000,
		DownPayment:        mortgage.Percent(20),
		InterestRateAnnual: 6,
		TermYears:          30,
	}
}

// TypicalParameters carries every cost the form asks for, with a down payment
// small enough that mortgage insurance applies at first.
func TypicalParameters() mortgage.InputParameters {
	return mortgage.InputParameters{
		HouseValue:             400000,
		DownPayment:            mortgage.Percent(10),
		HOAFeeMonthly:          150,
		InterestRateAnnual:     6.5,
		PropertyTax:            mortgage.Percent(2),
		Insurance:              mortgage.Percent(0.35),
		Maintenance:            mortgage.Percent(1),
		PMI:                    mortgage.Percent(0.5),
		AppreciationRateAnnual: 3,
		TermYears:              30,
		CostOfCapitalRate:      6.5,
	}
}

// SumPrincipal adds the scheduled principal and the extra principal of every
// record.
func SumPrincipal(records []mortgage.MonthlyRecord) (scheduled, extra float64) {
	for _, r := range records {
		scheduled += r.Principal
		extra += r.ExtraPrincipal
	}
	return scheduled, extra
}

// ComponentSum recomputes a record's actual payment from its parts.
func ComponentSum(r mortgage.MonthlyRecord) float64 {
	return r.Principal + r.Interest + r.ExtraPrincipal + r.PMI + r.Taxes + r.Insurance + r.Maintenance + r.HOA
}
