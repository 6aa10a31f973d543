// Package mortgage computes the month-by-month cost of owning a home with a
// fixed-rate mortgage and summarizes it over the life of the loan.
//
// InputParameters is a plain value: copies are independent and the engine never
// mutates it. Compute and Summarize are pure and safe to call concurrently for
// different parameter values.
package mortgage

import (
	"math"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
)

// InputParameters is the snapshot of user-supplied values for one run. Rates are
// annual percentages (6.0 means 6%).
type InputParameters struct {
	HouseValue             float64
	DownPayment            Basis // percent of HouseValue or fixed amount
	HOAFeeMonthly          float64
	InterestRateAnnual     float64
	PropertyTax            Basis // annual, percent of the appreciated house value
	Insurance              Basis // annual, percent of the appreciated house value
	Maintenance            Basis // annual, percent of the appreciated house value
	PMI                    Basis // annual, percent of the loan amount
	AppreciationRateAnnual float64
	TermYears              int
	ExtraPrincipalMonthly  float64
	CostOfCapitalRate      float64 // alternative investment return on equity
}

// DownPaymentAmount resolves the down payment against the house value.
func (p InputParameters) DownPaymentAmount() float64 {
	return p.DownPayment.Resolve(p.HouseValue)
}

// LoanAmount is the amount borrowed.
func (p InputParameters) LoanAmount() float64 {
	return p.HouseValue - p.DownPaymentAmount()
}

// TermMonths is the loan term in months.
func (p InputParameters) TermMonths() int {
	return p.TermYears * constants.MonthsPerYear
}

// PMIMonthly is the monthly mortgage insurance premium charged while the owned
// equity share is below the cancellation threshold.
func (p InputParameters) PMIMonthly() float64 {
	return p.PMI.Resolve(p.LoanAmount()) / constants.MonthsPerYear
}

// Validate checks every structural precondition and returns a
// *CalculationError of kind InvalidInput for the first one violated.
func (p InputParameters) Validate() error {
	amounts := []struct {
		field string
		value float64
	}{
		{"houseValue", p.HouseValue},
		{"hoaFee", p.HOAFeeMonthly},
		{"interestRate", p.InterestRateAnnual},
		{"appreciationRate", p.AppreciationRateAnnual},
		{"extraPrincipal", p.ExtraPrincipalMonthly},
		{"costOfCapitalRate", p.CostOfCapitalRate},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return invalidInput(a.field, "must be a finite number")
		}
	}

	if p.HouseValue <= 0 {
		return invalidInput("houseValue", "must be positive, got %.2f", p.HouseValue)
	}
	if p.HOAFeeMonthly < 0 {
		return invalidInput("hoaFee", "must not be negative, got %.2f", p.HOAFeeMonthly)
	}
	if p.InterestRateAnnual < 0 {
		return invalidInput("interestRate", "must not be negative, got %v", p.InterestRateAnnual)
	}
	if p.AppreciationRateAnnual <= constants.MinAppreciationRate {
		return invalidInput("appreciationRate", "must be greater than %v, got %v",
			constants.MinAppreciationRate, p.AppreciationRateAnnual)
	}
	if p.TermYears <= 0 {
		return invalidInput("termYears", "must be positive, got %d", p.TermYears)
	}
	if p.TermYears > constants.MaxTermYears {
		return invalidInput("termYears", "must be at most %d, got %d", constants.MaxTermYears, p.TermYears)
	}
	if p.ExtraPrincipalMonthly < 0 {
		return invalidInput("extraPrincipal", "must not be negative, got %.2f", p.ExtraPrincipalMonthly)
	}
	if p.CostOfCapitalRate < 0 {
		return invalidInput("costOfCapitalRate", "must not be negative, got %v", p.CostOfCapitalRate)
	}

	bases := []struct {
		field string
		value Basis
	}{
		{"downPayment", p.DownPayment},
		{"propertyTax", p.PropertyTax},
		{"insurance", p.Insurance},
		{"maintenance", p.Maintenance},
		{"pmi", p.PMI},
	}
	for _, b := range bases {
		if b.value.IsPercent() && (math.IsNaN(b.value.PercentValue()) || math.IsInf(b.value.PercentValue(), 0)) {
			return invalidInput(b.field, "must be a finite number")
		}
		if b.value.IsNegative() {
			return invalidInput(b.field, "must not be negative, got %s", b.value)
		}
	}

	if down := p.DownPaymentAmount(); down >= p.HouseValue {
		return invalidInput("downPayment", "%.2f must be less than the house value %.2f", down, p.HouseValue)
	}
	if loan := p.LoanAmount(); loan <= 0 || mathutil.Round(loan) == 0 {
		return invalidInput("downPayment", "leaves no loan amount to finance (%.2f)", loan)
	}
	return nil
}
