// Package optimizer searches for the value of one mortgage parameter that
// meets a goal, such as the extra principal needed to pay the loan off early.
package optimizer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-forecast/pkg/format"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/iwvelando/mortgage-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Fields the optimizer can search over.
const (
	// FieldExtraPrincipal finds the smallest monthly extra principal that pays
	// the loan off within Target months.
	FieldExtraPrincipal = "extraPrincipal"

	// FieldHouseValue finds the largest house value whose first monthly payment
	// stays within a Target budget.
	FieldHouseValue = "houseValue"
)

const (
	defaultTolerance     = 0.01
	defaultMaxIterations = 64
	maxBoundDoublings    = 40
)

// Directive names the field to search and the goal it must meet.
type Directive struct {
	Field         string  `yaml:"field" json:"field"`
	Target        float64 `yaml:"target" json:"target"`
	Tolerance     float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int     `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// Normalize fills in the search defaults and canonicalizes the field name.
func (d *Directive) Normalize() {
	switch strings.ToLower(strings.TrimSpace(d.Field)) {
	case strings.ToLower(FieldExtraPrincipal), "extra", "extra_principal":
		d.Field = FieldExtraPrincipal
	case strings.ToLower(FieldHouseValue), "house", "house_value":
		d.Field = FieldHouseValue
	}
	if d.Tolerance <= 0 {
		d.Tolerance = defaultTolerance
	}
	if d.MaxIterations <= 0 {
		d.MaxIterations = defaultMaxIterations
	}
}

func (d Directive) goal() string {
	if d.Field == FieldHouseValue {
		return fmt.Sprintf("first payment at most %s", format.Currency(d.Target))
	}
	return fmt.Sprintf("paid off within %d months", int(d.Target))
}

// Runner evaluates directives against one set of parameters.
type Runner struct {
	logger *zap.Logger
	engine *mortgage.Engine
	params mortgage.InputParameters
}

type evaluation struct {
	value    float64
	achieved float64
	feasible bool
}

// NewRunner constructs a Runner for the provided parameters.
func NewRunner(logger *zap.Logger, params mortgage.InputParameters) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, engine: mortgage.NewEngine(zap.NewNop()), params: params}, nil
}

// Run executes one directive. The parameters the Runner was built with are
// not modified; the found value is reported in the Summary.
func (r *Runner) Run(d Directive) (optimization.Summary, error) {
	d.Normalize()

	var (
		summary optimization.Summary
		err     error
	)
	switch d.Field {
	case FieldExtraPrincipal:
		summary, err = r.optimizeExtraPrincipal(d)
	case FieldHouseValue:
		summary, err = r.optimizeHouseValue(d)
	default:
		return optimization.Summary{}, fmt.Errorf("unsupported optimizer field %q", d.Field)
	}
	if err != nil {
		return optimization.Summary{}, err
	}

	r.logger.Info("optimizer directive complete",
		zap.String("op", "optimizer.Run"),
		zap.String("field", summary.Field),
		zap.Float64("original", summary.Original),
		zap.Float64("value", summary.Value),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary, nil
}

func (r *Runner) optimizeExtraPrincipal(d Directive) (optimization.Summary, error) {
	termMonths := r.params.TermMonths()
	if d.Target < 1 || d.Target != math.Trunc(d.Target) {
		return optimization.Summary{}, fmt.Errorf("payoff target must be a whole number of months, got %v", d.Target)
	}
	if int(d.Target) > termMonths {
		return optimization.Summary{}, fmt.Errorf("payoff target of %d months is longer than the %d month term", int(d.Target), termMonths)
	}

	evaluate := func(extra float64) (evaluation, error) {
		params := r.params
		params.ExtraPrincipalMonthly = extra
		records, err := r.engine.Compute(params)
		if err != nil {
			return evaluation{}, err
		}
		months := float64(len(records))
		return evaluation{value: extra, achieved: months, feasible: months <= d.Target}, nil
	}

	// Any extra payment of the whole loan clears it in the first month.
	lower, err := evaluate(0)
	if err != nil {
		return optimization.Summary{}, err
	}
	upper, err := evaluate(mathutil.Round(r.params.LoanAmount()))
	if err != nil {
		return optimization.Summary{}, err
	}

	best, iterations, err := r.bisect(d, lower, upper, evaluate)
	if err != nil {
		return optimization.Summary{}, err
	}
	return r.summarize(d, r.params.ExtraPrincipalMonthly, best, iterations, "months"), nil
}

func (r *Runner) optimizeHouseValue(d Directive) (optimization.Summary, error) {
	if d.Target <= 0 {
		return optimization.Summary{}, fmt.Errorf("monthly budget must be positive, got %v", d.Target)
	}

	evaluate := func(houseValue float64) (evaluation, error) {
		params := r.params
		params.HouseValue = houseValue
		records, err := r.engine.Compute(params)
		if errors.Is(err, mortgage.ErrInvalidInput) {
			// A house the down payment already covers is not a candidate.
			return evaluation{value: houseValue}, nil
		}
		if err != nil {
			return evaluation{}, err
		}
		payment := records[0].ActualPayment
		return evaluation{value: houseValue, achieved: payment, feasible: payment <= d.Target}, nil
	}

	lowest := 1.0
	if !r.params.DownPayment.IsPercent() {
		lowest = mathutil.Round(r.params.DownPaymentAmount()) + 1
	}
	lower, err := evaluate(lowest)
	if err != nil {
		return optimization.Summary{}, err
	}

	upper, err := evaluate(math.Max(r.params.HouseValue, lowest*2))
	if err != nil {
		return optimization.Summary{}, err
	}
	for i := 0; upper.feasible && i < maxBoundDoublings; i++ {
		if upper, err = evaluate(upper.value * 2); err != nil {
			return optimization.Summary{}, err
		}
	}

	best, iterations, err := r.bisect(d, lower, upper, evaluate)
	if err != nil {
		return optimization.Summary{}, err
	}
	return r.summarize(d, r.params.HouseValue, best, iterations, "payment"), nil
}

// bisect narrows the bracket between lower and upper, exactly one of which
// is expected to be feasible, and returns the feasible value closest to the
// boundary.
func (r *Runner) bisect(d Directive, lower, upper evaluation, evaluate func(float64) (evaluation, error)) (evaluation, int, error) {
	iterations := 0
	switch {
	case lower.feasible && upper.feasible:
		if d.Field == FieldExtraPrincipal {
			return lower, iterations, nil
		}
		return upper, iterations, nil
	case !lower.feasible && !upper.feasible:
		return lower, iterations, nil
	}

	best := upper
	if lower.feasible {
		best = lower
	}
	lo, hi := lower.value, upper.value
	for iterations < d.MaxIterations && math.Abs(hi-lo) > d.Tolerance {
		mid := mathutil.Round(lo + (hi-lo)/2)
		if mid == lo || mid == hi {
			break
		}
		evalMid, err := evaluate(mid)
		if err != nil {
			return evaluation{}, iterations, err
		}
		iterations++

		if evalMid.feasible {
			best = evalMid
		}
		// Move the end that shares the midpoint's feasibility.
		if evalMid.feasible == lower.feasible {
			lo = mid
		} else {
			hi = mid
		}
	}
	return best, iterations, nil
}

func (r *Runner) summarize(d Directive, original float64, best evaluation, iterations int, unit string) optimization.Summary {
	summary := optimization.Summary{
		Field:           d.Field,
		Goal:            d.goal(),
		Target:          d.Target,
		Original:        original,
		OriginalDisplay: format.Currency(original),
		Value:           best.value,
		ValueDisplay:    format.Currency(best.value),
		Achieved:        best.achieved,
		Iterations:      iterations,
		Converged:       best.feasible,
	}
	if !best.feasible {
		summary.Notes = []string{fmt.Sprintf("no %s meets the goal (%s)", d.Field, d.goal())}
		return summary
	}
	if unit == "months" && mathutil.IsZero(best.value) {
		summary.Notes = []string{"the scheduled payment already meets the goal"}
	}
	return summary
}
