package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

const testConfig = "../test_config.yaml"

func loadForecast(t *testing.T, path string) (*config.Configuration, *forecast.Forecast) {
	t.Helper()

	// Load and process the configuration exactly as main() does
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	result, err := forecast.FromConfig(zap.NewNop(), conf.Mortgage)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	return conf, result
}

// TestMainIntegrationBaseline checks the test configuration end to end.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, result := loadForecast(t, testConfig)

	if conf.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected output format csv, got %s", conf.Output.Format)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	params := result.Params
	if params.LoanAmount() != 360000 {
		t.Errorf("Expected loan amount 360000, got %.2f", params.LoanAmount())
	}

	first := result.Records[0]
	checks := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"PMI", first.PMI, 150},
		{"insurance", first.Insurance, 1400.0 / 12},
		{"HOA", first.HOA, 150},
		{"interest", first.Interest, 360000 * 6.5 / 1200},
		{"extra principal", first.ExtraPrincipal, 200},
		{"house value", first.HouseValue, 400000 * (1 + 3.0/1200)},
	}
	for _, check := range checks {
		if !mathutil.WithinTolerance(check.actual, check.expected, constants.CurrencyTolerance) {
			t.Errorf("Month 1 %s: expected %.2f, got %.2f", check.name, check.expected, check.actual)
		}
	}

	summary := result.Summary
	if summary.MonthsToPayoff >= params.TermMonths() {
		t.Errorf("Expected extra principal to shorten the loan, paid off in %d months", summary.MonthsToPayoff)
	}
	if summary.PMICutoffMonth <= 1 || summary.PMICutoffMonth > summary.MonthsToPayoff {
		t.Errorf("Expected PMI to be cancelled during the loan, got month %d", summary.PMICutoffMonth)
	}
	if !mathutil.WithinTolerance(summary.TotalPMIPaid, 150*float64(summary.PMICutoffMonth-1), constants.CurrencyTolerance) {
		t.Errorf("Expected %d months of PMI, got a total of %.2f", summary.PMICutoffMonth-1, summary.TotalPMIPaid)
	}
	if !mathutil.WithinTolerance(summary.TotalPrincipalPaid, params.LoanAmount(), constants.CurrencyTolerance) {
		t.Errorf("Expected principal to total the loan, got %.2f", summary.TotalPrincipalPaid)
	}
	if result.PayoffDate == "" || result.PayoffDate <= "2025-01" {
		t.Errorf("Expected a payoff date after the start date, got %q", result.PayoffDate)
	}
	if result.MonthLabel(1) != "2025-01" {
		t.Errorf("Expected the first month labelled 2025-01, got %s", result.MonthLabel(1))
	}

	last := result.Records[len(result.Records)-1]
	if last.RemainingBalance != 0 {
		t.Errorf("Expected a zero final balance, got %.2f", last.RemainingBalance)
	}
	if !mathutil.WithinTolerance(summary.FinalEquity, last.HouseValue, constants.CurrencyTolerance) {
		t.Errorf("Expected full equity at payoff, got %.2f of %.2f", summary.FinalEquity, last.HouseValue)
	}
}

// TestExampleConfiguration keeps the shipped example loadable.
func TestExampleConfiguration(t *testing.T) {
	conf, result := loadForecast(t, filepath.Join("..", "..", constants.ExampleConfigFile))

	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected output format pretty, got %s", conf.Output.Format)
	}
	if result.Summary.MonthsToPayoff != 360 {
		t.Errorf("Expected a 30 year payoff, got %d months", result.Summary.MonthsToPayoff)
	}
	if result.Params.CostOfCapitalRate != result.Params.InterestRateAnnual {
		t.Errorf("Expected the cost of capital to follow the interest rate, got %.3f", result.Params.CostOfCapitalRate)
	}
}

// TestCSVOutputFormat checks the CSV rendering of a full run.
func TestCSVOutputFormat(t *testing.T) {
	_, result := loadForecast(t, testConfig)

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, result); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(rows) != len(result.Records)+1 {
		t.Fatalf("Expected %d rows, got %d", len(result.Records)+1, len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(output.SpreadsheetHeader, ",") {
		t.Errorf("Unexpected header %v", rows[0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(output.SpreadsheetHeader) {
			t.Fatalf("Row %d has %d columns, expected %d", i+1, len(row), len(output.SpreadsheetHeader))
		}
	}
}

// TestPrettyOutputFormat checks the human-readable rendering of a full run.
func TestPrettyOutputFormat(t *testing.T) {
	_, result := loadForecast(t, testConfig)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, result)
	text := buf.String()

	for _, expected := range []string{
		"--- Mortgage on a $",
		"--- Summary ---",
		"2025-01",
		"last payment " + result.PayoffDate,
		"PMI cancelled",
	} {
		if !strings.Contains(text, expected) {
			t.Errorf("Expected pretty output to contain %q", expected)
		}
	}
}

// TestExportsMatchRun writes both export files and compares them with the run.
func TestExportsMatchRun(t *testing.T) {
	_, result := loadForecast(t, testConfig)
	dir := t.TempDir()

	spreadsheet, err := output.ExportSpreadsheet(dir, result.Records)
	if err != nil {
		t.Fatalf("ExportSpreadsheet() error = %v", err)
	}
	analysis, err := output.ExportAnalysis(dir, result.Params, result.Summary)
	if err != nil {
		t.Fatalf("ExportAnalysis() error = %v", err)
	}

	if filepath.Base(spreadsheet) != constants.SpreadsheetFileName {
		t.Errorf("Unexpected spreadsheet file %s", spreadsheet)
	}
	if filepath.Base(analysis) != constants.AnalysisFileName {
		t.Errorf("Unexpected analysis file %s", analysis)
	}

	text, err := output.SpreadsheetString(result.Records)
	if err != nil {
		t.Fatalf("SpreadsheetString() error = %v", err)
	}
	if !strings.HasPrefix(text, "month,") {
		t.Errorf("Expected the spreadsheet text to start with the header, got %q", text[:20])
	}
	if math.IsNaN(result.Summary.WasteCost) || result.Summary.WasteCost <= 0 {
		t.Errorf("Expected a positive waste cost, got %.2f", result.Summary.WasteCost)
	}
}
