package forecast

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/iwvelando/mortgage-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func TestGetForecast(t *testing.T) {
	result, err := GetForecast(zap.NewNop(), testutil.ReferenceParameters())
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}

	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", result.RunID, err)
	}
	if len(result.Records) != 360 {
		t.Errorf("len(Records) = %d, expected 360", len(result.Records))
	}
	if result.Summary.MonthsToPayoff != len(result.Records) {
		t.Errorf("MonthsToPayoff = %d, expected %d", result.Summary.MonthsToPayoff, len(result.Records))
	}
	if result.PayoffDate != "" {
		t.Errorf("PayoffDate = %q, expected none without a start date", result.PayoffDate)
	}
	if got := result.MonthLabel(12); got != "12" {
		t.Errorf("MonthLabel(12) = %q, expected 12", got)
	}
}

func TestGetForecastUniqueRunIDs(t *testing.T) {
	first, err := GetForecast(nil, testutil.ReferenceParameters())
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	second, err := GetForecast(nil, testutil.ReferenceParameters())
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if first.RunID == second.RunID {
		t.Errorf("two runs share the id %s", first.RunID)
	}
}

func TestGetForecastErrors(t *testing.T) {
	params := testutil.ReferenceParameters()
	params.HouseValue = -1

	_, err := GetForecast(zap.NewNop(), params)
	if !errors.Is(err, mortgage.ErrInvalidInput) {
		t.Errorf("GetForecast() error = %v, expected ErrInvalidInput", err)
	}

	params = testutil.ReferenceParameters()
	params.InterestRateAnnual = 1200000
	_, err = GetForecast(zap.NewNop(), params)
	if !errors.Is(err, mortgage.ErrNonConverging) {
		t.Errorf("GetForecast() error = %v, expected ErrNonConverging", err)
	}
}

func TestFromConfig(t *testing.T) {
	down := 20.0
	m := config.MortgageConfig{
		HouseValue:   300000,
		DownPayment:  &config.BasisConfig{Percent: &down},
		InterestRate: 6,
		TermYears:    30,
		StartDate:    "2025-01",
	}

	result, err := FromConfig(zap.NewNop(), m)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if result.PayoffDate != "2054-12" {
		t.Errorf("PayoffDate = %q, expected 2054-12", result.PayoffDate)
	}
	if got := result.MonthLabel(2); got != "2025-02" {
		t.Errorf("MonthLabel(2) = %q, expected 2025-02", got)
	}

	m.StartDate = "next spring"
	result, err = FromConfig(zap.NewNop(), m)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if result.StartDate != "" || result.PayoffDate != "" {
		t.Errorf("invalid start date should be ignored, got %q/%q", result.StartDate, result.PayoffDate)
	}

	amount := 1000.0
	m.PMI = &config.BasisConfig{Percent: &down, Amount: &amount}
	if _, err := FromConfig(zap.NewNop(), m); err == nil {
		t.Error("FromConfig() expected error for a basis with both variants")
	}
}
