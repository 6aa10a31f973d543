package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/shopspring/decimal"
)

// SpreadsheetHeader is the column order of the month-by-month export.
var SpreadsheetHeader = []string{
	"month", "interest", "principal", "extra_principal", "remaining_balance", "pmi", "taxes",
	"insurance", "maintenance", "hoa", "house_value", "actual_payment", "cost_of_capital", "equity",
}

// WriteSpreadsheetCSV writes one header row and one row per record.
func WriteSpreadsheetCSV(w io.Writer, records []mortgage.MonthlyRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(SpreadsheetHeader); err != nil {
		return fmt.Errorf("failed to write spreadsheet header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Month),
			money(r.Interest),
			money(r.Principal),
			money(r.ExtraPrincipal),
			money(r.RemainingBalance),
			money(r.PMI),
			money(r.Taxes),
			money(r.Insurance),
			money(r.Maintenance),
			money(r.HOA),
			money(r.HouseValue),
			money(r.ActualPayment),
			money(r.CostOfCapital),
			money(r.Equity),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write month %d: %w", r.Month, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAnalysisCSV writes the parameters of a run as name,value rows, a blank
// separator row, then the summary as name,value rows.
func WriteAnalysisCSV(w io.Writer, params mortgage.InputParameters, summary mortgage.SummaryResult) error {
	writer := csv.NewWriter(w)

	rows := [][]string{
		{"house_value", money(params.HouseValue)},
		{"down_payment", params.DownPayment.String()},
		{"down_payment_amount", money(params.DownPaymentAmount())},
		{"loan_amount", money(params.LoanAmount())},
		{"hoa_fee", money(params.HOAFeeMonthly)},
		{"interest_rate", rate(params.InterestRateAnnual)},
		{"property_tax", params.PropertyTax.String()},
		{"insurance", params.Insurance.String()},
		{"maintenance", params.Maintenance.String()},
		{"pmi", params.PMI.String()},
		{"appreciation_rate", rate(params.AppreciationRateAnnual)},
		{"term_years", strconv.Itoa(params.TermYears)},
		{"extra_principal", money(params.ExtraPrincipalMonthly)},
		{"cost_of_capital_rate", rate(params.CostOfCapitalRate)},
		{""},
		{"total_interest_paid", money(summary.TotalInterestPaid)},
		{"total_principal_paid", money(summary.TotalPrincipalPaid)},
		{"total_pmi_paid", money(summary.TotalPMIPaid)},
		{"total_taxes_paid", money(summary.TotalTaxesPaid)},
		{"total_insurance_paid", money(summary.TotalInsurancePaid)},
		{"total_maintenance_paid", money(summary.TotalMaintenancePaid)},
		{"total_hoa_paid", money(summary.TotalHOAPaid)},
		{"total_cost_of_capital", money(summary.TotalCostOfCapital)},
		{"waste_cost", money(summary.WasteCost)},
		{"final_equity", money(summary.FinalEquity)},
		{"months_to_payoff", strconv.Itoa(summary.MonthsToPayoff)},
		{"final_house_value", money(summary.FinalHouseValue)},
		{"scheduled_payment", money(summary.ScheduledPayment)},
		{"total_extra_principal", money(summary.TotalExtraPrincipal)},
		{"total_payments", money(summary.TotalPayments)},
		{"effective_interest_rate", decimal.NewFromFloat(summary.EffectiveInterestRate).StringFixed(4)},
		{"pmi_cutoff_month", strconv.Itoa(summary.PMICutoffMonth)},
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	return nil
}

// SpreadsheetString returns the month-by-month export as a string.
func SpreadsheetString(records []mortgage.MonthlyRecord) (string, error) {
	var buf bytes.Buffer
	if err := WriteSpreadsheetCSV(&buf, records); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportSpreadsheet writes mortgage_spreadsheet.csv into dir and returns its
// path.
func ExportSpreadsheet(dir string, records []mortgage.MonthlyRecord) (string, error) {
	return exportFile(dir, constants.SpreadsheetFileName, func(w io.Writer) error {
		return WriteSpreadsheetCSV(w, records)
	})
}

// ExportAnalysis writes mortgage_analysis.csv into dir and returns its path.
func ExportAnalysis(dir string, params mortgage.InputParameters, summary mortgage.SummaryResult) (string, error) {
	return exportFile(dir, constants.AnalysisFileName, func(w io.Writer) error {
		return WriteAnalysisCSV(w, params, summary)
	})
}

func exportFile(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// money renders a monetary value with exactly two fractional digits.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(constants.CurrencyPlaces)
}

func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
