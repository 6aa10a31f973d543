package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/iwvelando/mortgage-forecast/pkg/testutil"
)

var twoDecimals = regexp.MustCompile(`^-?\d+\.\d{2}$`)

func TestWriteSpreadsheetCSV(t *testing.T) {
	params := testutil.TypicalParameters()
	params.ExtraPrincipalMonthly = 100
	records, err := mortgage.Compute(params)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSpreadsheetCSV(&buf, records); err != nil {
		t.Fatalf("WriteSpreadsheetCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("got %d rows, expected %d", len(rows), len(records)+1)
	}

	expectedHeader := "month,interest,principal,extra_principal,remaining_balance,pmi,taxes,insurance,maintenance,hoa,house_value,actual_payment,cost_of_capital,equity"
	if got := strings.Join(rows[0], ","); got != expectedHeader {
		t.Errorf("header = %s, expected %s", got, expectedHeader)
	}

	for i, row := range rows[1:] {
		if row[0] != strconv.Itoa(records[i].Month) {
			t.Errorf("row %d month = %s, expected %d", i+1, row[0], records[i].Month)
		}
		for j, cell := range row[1:] {
			if !twoDecimals.MatchString(cell) {
				t.Errorf("row %d column %s = %q, expected two fractional digits", i+1, rows[0][j+1], cell)
			}
		}
	}

	last := rows[len(rows)-1]
	if last[4] != "0.00" {
		t.Errorf("final remaining_balance = %s, expected 0.00", last[4])
	}
	if rows[1][9] != "150.00" {
		t.Errorf("hoa = %s, expected 150.00", rows[1][9])
	}
}

func TestWriteAnalysisCSV(t *testing.T) {
	params := testutil.TypicalParameters()
	records, err := mortgage.Compute(params)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	summary, err := mortgage.Summarize(params, records)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteAnalysisCSV(&buf, params, summary); err != nil {
		t.Fatalf("WriteAnalysisCSV() error = %v", err)
	}

	sections := strings.Split(buf.String(), "\n\n")
	if len(sections) != 2 {
		t.Fatalf("expected parameters and summary separated by one blank row, got %d sections", len(sections))
	}

	paramRows := strings.Split(strings.TrimSpace(sections[0]), "\n")
	wantParams := map[string]string{
		"house_value":  "400000.00",
		"down_payment": "10%",
		"loan_amount":  "360000.00",
		"hoa_fee":      "150.00",
		"term_years":   "30",
		"pmi":          "0.5%",
	}
	for _, row := range paramRows {
		name, value, _ := strings.Cut(row, ",")
		if want, ok := wantParams[name]; ok && value != want {
			t.Errorf("%s = %s, expected %s", name, value, want)
		}
	}

	summaryRows := strings.Split(strings.TrimSpace(sections[1]), "\n")
	wantOrder := []string{
		"total_interest_paid", "total_principal_paid", "total_pmi_paid", "total_taxes_paid",
		"total_insurance_paid", "total_maintenance_paid", "total_hoa_paid", "total_cost_of_capital",
		"waste_cost", "final_equity", "months_to_payoff", "final_house_value",
	}
	if len(summaryRows) < len(wantOrder) {
		t.Fatalf("got %d summary rows, expected at least %d", len(summaryRows), len(wantOrder))
	}
	for i, name := range wantOrder {
		if got, _, _ := strings.Cut(summaryRows[i], ","); got != name {
			t.Errorf("summary row %d = %s, expected %s", i, got, name)
		}
	}
	if summaryRows[10] != "months_to_payoff,360" {
		t.Errorf("months_to_payoff row = %s", summaryRows[10])
	}
}

func TestExportFiles(t *testing.T) {
	params := testutil.ReferenceParameters()
	records, err := mortgage.Compute(params)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	summary, err := mortgage.Summarize(params, records)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	dir := filepath.Join(t.TempDir(), "exports")

	spreadsheet, err := ExportSpreadsheet(dir, records)
	if err != nil {
		t.Fatalf("ExportSpreadsheet() error = %v", err)
	}
	if filepath.Base(spreadsheet) != constants.SpreadsheetFileName {
		t.Errorf("spreadsheet written to %s", spreadsheet)
	}

	analysis, err := ExportAnalysis(dir, params, summary)
	if err != nil {
		t.Fatalf("ExportAnalysis() error = %v", err)
	}
	if filepath.Base(analysis) != constants.AnalysisFileName {
		t.Errorf("analysis written to %s", analysis)
	}

	data, err := os.ReadFile(spreadsheet)
	if err != nil {
		t.Fatalf("failed to read spreadsheet: %v", err)
	}
	expected, err := SpreadsheetString(records)
	if err != nil {
		t.Fatalf("SpreadsheetString() error = %v", err)
	}
	if string(data) != expected {
		t.Error("exported spreadsheet differs from SpreadsheetString")
	}

	// Exporting again overwrites.
	if _, err := ExportSpreadsheet(dir, records[:1]); err != nil {
		t.Fatalf("ExportSpreadsheet() error = %v", err)
	}
	data, _ = os.ReadFile(spreadsheet)
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("re-export did not overwrite: %d lines", strings.Count(string(data), "\n"))
	}
}

func TestExportUnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := ExportSpreadsheet(filepath.Join(file, "sub"), nil); err == nil {
		t.Error("ExportSpreadsheet() expected error when the directory cannot be created")
	}
}
