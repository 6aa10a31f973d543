// Package forecast runs the mortgage engine for one set of parameters and
// bundles everything a presentation layer needs from the run.
package forecast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/datetime"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"go.uber.org/zap"
)

// Forecast holds all information related to one computed schedule.
type Forecast struct {
	RunID      string
	Params     mortgage.InputParameters
	Records    []mortgage.MonthlyRecord
	Summary    mortgage.SummaryResult
	StartDate  string // first payment month, empty when not configured
	PayoffDate string // month of the final payment, empty without StartDate
	Duration   time.Duration
}

// GetForecast computes the schedule and summary for params.
func GetForecast(logger *zap.Logger, params mortgage.InputParameters) (*Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	runID := uuid.NewString()

	records, err := mortgage.NewEngine(logger.With(zap.String("run_id", runID))).Compute(params)
	if err != nil {
		return nil, fmt.Errorf("failed to compute schedule: %w", err)
	}

	summary, err := mortgage.Summarize(params, records)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize schedule: %w", err)
	}

	result := &Forecast{
		RunID:    runID,
		Params:   params,
		Records:  records,
		Summary:  summary,
		Duration: time.Since(start),
	}

	logger.Debug(fmt.Sprintf("computed %d months in %s", len(records), result.Duration),
		zap.String("op", "forecast.GetForecast"),
		zap.String("run_id", runID),
		zap.Float64("total_interest", summary.TotalInterestPaid),
		zap.Float64("waste_cost", summary.WasteCost),
	)

	return result, nil
}

// FromConfig converts the mortgage section of a configuration and computes its
// forecast. A valid StartDate labels the payoff month.
func FromConfig(logger *zap.Logger, m config.MortgageConfig) (*Forecast, error) {
	params, err := m.ToParameters()
	if err != nil {
		return nil, fmt.Errorf("invalid mortgage configuration: %w", err)
	}

	result, err := GetForecast(logger, params)
	if err != nil {
		return nil, err
	}

	if m.StartDate != "" {
		if err := result.SetStartDate(m.StartDate); err != nil && logger != nil {
			logger.Warn("ignoring start date",
				zap.String("op", "forecast.FromConfig"),
				zap.String("start_date", m.StartDate),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

// SetStartDate anchors the schedule to a calendar month.
func (f *Forecast) SetStartDate(startDate string) error {
	payoff, err := datetime.PaymentDate(startDate, f.Summary.MonthsToPayoff)
	if err != nil {
		return err
	}
	f.StartDate = startDate
	f.PayoffDate = payoff
	return nil
}

// MonthLabel returns the calendar month of a record, or its month number when
// the forecast has no start date.
func (f *Forecast) MonthLabel(month int) string {
	if f.StartDate != "" {
		if label, err := datetime.PaymentDate(f.StartDate, month); err == nil {
			return label
		}
	}
	return fmt.Sprintf("%d", month)
}
