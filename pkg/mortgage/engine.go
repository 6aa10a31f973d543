package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/loans"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// MonthlyRecord holds every cost of owning the home for one month.
// RemainingBalance is the loan balance after this month's payment.
type MonthlyRecord struct {
	Month            int     `json:"month"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	ExtraPrincipal   float64 `json:"extraPrincipal"`
	RemainingBalance float64 `json:"remainingBalance"`
	PMI              float64 `json:"pmi"`
	Taxes            float64 `json:"taxes"`
	Insurance        float64 `json:"insurance"`
	Maintenance      float64 `json:"maintenance"`
	HOA              float64 `json:"hoa"`
	HouseValue       float64 `json:"houseValue"`
	ActualPayment    float64 `json:"actualPayment"`
	CostOfCapital    float64 `json:"costOfCapital"`
	Equity           float64 `json:"equity"`
}

// EquityShare is the fraction of the house value owned outright after this
// month's payment.
func (r MonthlyRecord) EquityShare() float64 {
	return r.Equity / r.HouseValue
}

// Engine produces amortization schedules. It keeps no state between runs.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine logging through logger; a nil logger disables
// logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Compute is a shorthand for NewEngine(nil).Compute.
func Compute(params InputParameters) ([]MonthlyRecord, error) {
	return NewEngine(nil).Compute(params)
}

// carry is the state threaded from one month to the next.
type carry struct {
	balance      float64
	invested     float64 // down payment plus principal paid so far
	pmiCancelled bool
}

// Compute returns one record per month until the loan is paid off or the term
// ends, whichever comes first.
func (e *Engine) Compute(params InputParameters) ([]MonthlyRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	termMonths := params.TermMonths()
	amortizer := loans.NewAmortizer(e.logger, params.LoanAmount(), params.InterestRateAnnual,
		termMonths, params.ExtraPrincipalMonthly)

	e.logger.Debug(fmt.Sprintf("computing schedule for a %.2f loan over %d months at %.3f%%",
		params.LoanAmount(), termMonths, params.InterestRateAnnual),
		zap.String("op", "mortgage.Compute"),
		zap.Float64("scheduled_payment", amortizer.ScheduledPayment()),
	)

	state := carry{
		balance:  params.LoanAmount(),
		invested: params.DownPaymentAmount(),
	}
	records := make([]MonthlyRecord, 0, min(termMonths, constants.MaxTermYears*constants.MonthsPerYear))
	for month := 1; month <= termMonths && state.balance > 0; month++ {
		record, next, err := e.step(params, amortizer, month, state)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		state = next
	}

	if len(records) < termMonths {
		e.logger.Debug(fmt.Sprintf("loan paid off after %d of %d months", len(records), termMonths),
			zap.String("op", "mortgage.Compute"),
		)
	}
	return records, nil
}

func (e *Engine) step(params InputParameters, amortizer *loans.Amortizer, month int, state carry) (MonthlyRecord, carry, error) {
	payment, err := amortizer.Next(month, state.balance)
	if err != nil {
		return MonthlyRecord{}, state, &CalculationError{
			Kind:   NonConverging,
			Month:  month,
			Reason: "scheduled payment does not cover the interest due",
			Err:    err,
		}
	}

	houseValue := mathutil.Compound(params.HouseValue, params.AppreciationRateAnnual, month)

	record := MonthlyRecord{
		Month:            month,
		Interest:         payment.Interest,
		Principal:        payment.Principal,
		ExtraPrincipal:   payment.ExtraPrincipal,
		RemainingBalance: payment.RemainingPrincipal,
		Taxes:            params.PropertyTax.Resolve(houseValue) / constants.MonthsPerYear,
		Insurance:        params.Insurance.Resolve(houseValue) / constants.MonthsPerYear,
		Maintenance:      params.Maintenance.Resolve(houseValue) / constants.MonthsPerYear,
		HOA:              params.HOAFeeMonthly,
		HouseValue:       houseValue,
		CostOfCapital:    state.invested * mathutil.MonthlyRate(params.CostOfCapitalRate),
		Equity:           houseValue - payment.RemainingPrincipal,
	}

	// Once cancelled, PMI stays off even if depreciation pushes the share back
	// under the threshold.
	next := state
	if !next.pmiCancelled && record.EquityShare() >= constants.PMIEquityThreshold {
		next.pmiCancelled = true
		if params.PMIMonthly() > 0 {
			e.logger.Debug(fmt.Sprintf("mortgage insurance cancelled at month %d with %.1f%% equity",
				month, record.EquityShare()*constants.PercentageMultiplier),
				zap.String("op", "mortgage.Compute"),
			)
		}
	}
	if !next.pmiCancelled {
		record.PMI = params.PMIMonthly()
	}

	record.ActualPayment = record.Principal + record.Interest + record.ExtraPrincipal + record.PMI +
		record.Taxes + record.Insurance + record.Maintenance + record.HOA

	next.balance = payment.RemainingPrincipal
	next.invested += payment.Principal + payment.ExtraPrincipal
	return record, next, nil
}
