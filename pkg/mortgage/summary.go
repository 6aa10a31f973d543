package mortgage

import (
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/loans"
)

// SummaryResult aggregates a schedule over the life of the loan.
type SummaryResult struct {
	TotalInterestPaid    float64 `json:"totalInterestPaid"`
	TotalPrincipalPaid   float64 `json:"totalPrincipalPaid"`
	TotalPMIPaid         float64 `json:"totalPmiPaid"`
	TotalTaxesPaid       float64 `json:"totalTaxesPaid"`
	TotalInsurancePaid   float64 `json:"totalInsurancePaid"`
	TotalMaintenancePaid float64 `json:"totalMaintenancePaid"`
	TotalHOAPaid         float64 `json:"totalHoaPaid"`
	TotalCostOfCapital   float64 `json:"totalCostOfCapital"`
	WasteCost            float64 `json:"wasteCost"`
	FinalEquity          float64 `json:"finalEquity"`
	MonthsToPayoff       int     `json:"monthsToPayoff"`
	FinalHouseValue      float64 `json:"finalHouseValue"`

	ScheduledPayment      float64 `json:"scheduledPayment"`
	TotalExtraPrincipal   float64 `json:"totalExtraPrincipal"`
	TotalPayments         float64 `json:"totalPayments"`
	EffectiveInterestRate float64 `json:"effectiveInterestRate"`
	PMICutoffMonth        int     `json:"pmiCutoffMonth"`
}

// Summarize folds a schedule produced by Compute into whole-run totals. The
// principal total includes extra principal payments. WasteCost is every
// outflow that does not build equity plus the cost of capital.
func Summarize(params InputParameters, records []MonthlyRecord) (SummaryResult, error) {
	var summary SummaryResult
	if len(records) == 0 {
		return summary, invalidInput("records", "cannot summarize an empty schedule")
	}

	for _, r := range records {
		summary.TotalInterestPaid += r.Interest
		summary.TotalPrincipalPaid += r.Principal + r.ExtraPrincipal
		summary.TotalExtraPrincipal += r.ExtraPrincipal
		summary.TotalPMIPaid += r.PMI
		summary.TotalTaxesPaid += r.Taxes
		summary.TotalInsurancePaid += r.Insurance
		summary.TotalMaintenancePaid += r.Maintenance
		summary.TotalHOAPaid += r.HOA
		summary.TotalCostOfCapital += r.CostOfCapital
		summary.TotalPayments += r.ActualPayment
		if summary.PMICutoffMonth == 0 && r.EquityShare() >= constants.PMIEquityThreshold {
			summary.PMICutoffMonth = r.Month
		}
	}

	summary.WasteCost = summary.TotalInterestPaid + summary.TotalPMIPaid + summary.TotalTaxesPaid +
		summary.TotalInsurancePaid + summary.TotalMaintenancePaid + summary.TotalHOAPaid +
		summary.TotalCostOfCapital

	last := records[len(records)-1]
	summary.FinalEquity = last.Equity
	summary.FinalHouseValue = last.HouseValue
	summary.MonthsToPayoff = len(records)

	summary.ScheduledPayment = loans.CalculateMonthlyPayment(params.LoanAmount(), params.InterestRateAnnual, params.TermMonths())
	if summary.TotalPrincipalPaid > 0 {
		summary.EffectiveInterestRate = summary.TotalInterestPaid / summary.TotalPrincipalPaid *
			(constants.MonthsPerYear / float64(summary.MonthsToPayoff)) * constants.PercentageMultiplier
	}
	return summary, nil
}
