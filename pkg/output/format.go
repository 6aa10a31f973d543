// Package output provides utilities for formatting, displaying and exporting
// mortgage forecasts.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/format"
	"github.com/iwvelando/mortgage-forecast/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table
// followed by the summary.
func PrettyFormat(w io.Writer, result *forecast.Forecast) {
	p := message.NewPrinter(language.English)
	params := result.Params

	_, _ = p.Fprintf(w, "--- Mortgage on a $%.2f house (%s down, %.3f%% over %d years) ---\n",
		params.HouseValue, params.DownPayment, params.InterestRateAnnual, params.TermYears)
	_, _ = fmt.Fprintf(w, "%-7s | %11s | %11s | %9s | %13s | %9s | %11s | %13s\n",
		"Month", "Interest", "Principal", "Extra", "Balance", "PMI", "Escrow+HOA", "Payment")
	_, _ = fmt.Fprintf(w, "%-7s | %11s | %11s | %9s | %13s | %9s | %11s | %13s\n",
		"_____", "________", "_________", "_____", "_______", "___", "__________", "_______")
	for _, r := range result.Records {
		_, _ = p.Fprintf(w, "%-7s | %11.2f | %11.2f | %9.2f | %13.2f | %9.2f | %11.2f | %13.2f\n",
			result.MonthLabel(r.Month), r.Interest, r.Principal, r.ExtraPrincipal, r.RemainingBalance,
			r.PMI, r.Taxes+r.Insurance+r.Maintenance+r.HOA, r.ActualPayment)
	}

	_, _ = fmt.Fprintf(w, "\n--- Summary ---\n")
	for _, line := range SummaryLines(result) {
		_, _ = fmt.Fprintf(w, "%-26s %s\n", line.Label+":", line.Value)
	}
}

// SummaryLine is one labelled, display-formatted summary value.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines renders the summary of a forecast for display.
func SummaryLines(result *forecast.Forecast) []SummaryLine {
	s := result.Summary
	payoff := fmt.Sprintf("%d months (%.1f years)", s.MonthsToPayoff, float64(s.MonthsToPayoff)/12)
	if result.PayoffDate != "" {
		payoff += ", last payment " + result.PayoffDate
	}
	pmiCutoff := "never charged"
	if s.TotalPMIPaid > 0 {
		pmiCutoff = fmt.Sprintf("month %d", s.PMICutoffMonth)
	}

	return []SummaryLine{
		{"Scheduled P&I payment", format.Currency(s.ScheduledPayment)},
		{"Total interest paid", format.Currency(s.TotalInterestPaid)},
		{"Total principal paid", format.Currency(s.TotalPrincipalPaid)},
		{"Total extra principal", format.Currency(s.TotalExtraPrincipal)},
		{"Total PMI paid", format.Currency(s.TotalPMIPaid)},
		{"Total taxes paid", format.Currency(s.TotalTaxesPaid)},
		{"Total insurance paid", format.Currency(s.TotalInsurancePaid)},
		{"Total maintenance paid", format.Currency(s.TotalMaintenancePaid)},
		{"Total HOA paid", format.Currency(s.TotalHOAPaid)},
		{"Total payments", format.Currency(s.TotalPayments)},
		{"Total cost of capital", format.Currency(s.TotalCostOfCapital)},
		{"Waste cost", format.Currency(s.WasteCost)},
		{"Final house value", format.Currency(s.FinalHouseValue)},
		{"Final equity", format.Currency(s.FinalEquity)},
		{"Payoff", payoff},
		{"PMI cancelled", pmiCutoff},
		{"Effective interest rate", format.Percent(s.EffectiveInterestRate)},
	}
}

// CsvFormat outputs the month-by-month schedule in comma-separated value
// format.
func CsvFormat(w io.Writer, result *forecast.Forecast) error {
	return WriteSpreadsheetCSV(w, result.Records)
}

// OptimizationFormat outputs the result of an optimizer directive.
func OptimizationFormat(w io.Writer, summary optimization.Summary) {
	_, _ = fmt.Fprintf(w, "\n--- Optimizer: %s ---\n", summary.Field)
	_, _ = fmt.Fprintf(w, "%-26s %s\n", "Goal:", summary.Goal)
	_, _ = fmt.Fprintf(w, "%-26s %s\n", "Configured value:", summary.OriginalDisplay)
	status := "found"
	if !summary.Converged {
		status = "not found"
	}
	_, _ = fmt.Fprintf(w, "%-26s %s (%s after %d iterations)\n", "Optimized value:", summary.ValueDisplay, status, summary.Iterations)
	for _, note := range summary.Notes {
		_, _ = fmt.Fprintf(w, "%-26s %s\n", "Note:", note)
	}
}
