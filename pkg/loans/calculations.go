// Package loans provides the principal-and-interest side of a fixed-rate
// amortization: the scheduled payment and the month-by-month balance split.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrNegativeAmortization is returned when a scheduled payment no longer covers
// the interest accrued on the outstanding balance.
var ErrNegativeAmortization = errors.New("scheduled payment does not cover interest")

// Payment holds the balance-side values for one month.
type Payment struct {
	Interest           float64
	Principal          float64
	ExtraPrincipal     float64
	RemainingPrincipal float64
	Final              bool
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(loanAmount, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		return loanAmount / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	return loanAmount * periodicInterestRate / (1 - math.Pow(1+periodicInterestRate, -float64(termMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// Amortizer splits a fixed scheduled payment into interest and principal month
// after month. It holds no balance; callers thread the balance through Next.
type Amortizer struct {
	logger         *zap.Logger
	annualRate     float64
	termMonths     int
	scheduled      float64
	extraPrincipal float64
}

// NewAmortizer creates an Amortizer for the given loan terms.
func NewAmortizer(logger *zap.Logger, loanAmount, annualInterestRate float64, termMonths int, extraPrincipal float64) *Amortizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Amortizer{
		logger:         logger,
		annualRate:     annualInterestRate,
		termMonths:     termMonths,
		scheduled:      CalculateMonthlyPayment(loanAmount, annualInterestRate, termMonths),
		extraPrincipal: extraPrincipal,
	}
}

// ScheduledPayment returns the fixed principal-and-interest payment.
func (a *Amortizer) ScheduledPayment() float64 {
	return a.scheduled
}

// Next computes the payment for the given 1-based month against the balance
// outstanding before that month. The returned payment never leaves a negative
// balance; the month that brings the balance to zero is marked Final.
func (a *Amortizer) Next(month int, balance float64) (Payment, error) {
	var payment Payment

	payment.Interest = CalculateInterestPayment(balance, a.annualRate)
	payment.Principal = a.scheduled - payment.Interest
	if payment.Principal < 0 || (payment.Principal == 0 && a.extraPrincipal <= 0) {
		return payment, fmt.Errorf("month %d: payment %.2f against interest %.2f: %w",
			month, a.scheduled, payment.Interest, ErrNegativeAmortization)
	}
	payment.Principal = mathutil.Min(payment.Principal, balance)

	payment.ExtraPrincipal = CapExtraPrincipal(a.logger, a.extraPrincipal, balance-payment.Principal, month)

	// Anything under half a cent left after this month is rounding dust from the
	// annuity formula and is folded into the principal.
	if month >= a.termMonths || mathutil.Round(balance-payment.Principal-payment.ExtraPrincipal) == 0 {
		payment.Principal = balance - payment.ExtraPrincipal
		payment.RemainingPrincipal = 0
		payment.Final = true
		return payment, nil
	}

	payment.RemainingPrincipal = balance - payment.Principal - payment.ExtraPrincipal
	return payment, nil
}

// CapExtraPrincipal limits a requested extra principal payment to what is still
// owed after the scheduled principal, never returning a negative amount.
func CapExtraPrincipal(logger *zap.Logger, requested, owed float64, month int) float64 {
	if requested <= 0 {
		return 0
	}
	if requested > owed {
		capped := mathutil.Max(owed, 0)
		if logger != nil {
			logger.Debug("capping extra principal payment to prevent overpayment",
				zap.String("op", "loans.CapExtraPrincipal"),
				zap.Int("month", month),
				zap.Float64("requested", requested),
				zap.Float64("capped_to_balance", capped),
			)
		}
		return capped
	}
	return requested
}
