package mortgage

import (
	"strconv"

	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// BasisKind tells whether a Basis is a percentage or a fixed amount.
type BasisKind int

const (
	// PercentBasis values are a percentage of a reference amount.
	PercentBasis BasisKind = iota
	// AmountBasis values are a fixed monetary amount.
	AmountBasis
)

// Basis is a value entered either as a percentage of some reference amount or
// as a fixed monetary amount. The zero value is 0%.
type Basis struct {
	kind    BasisKind
	percent float64
	amount  decimal.Decimal
}

// Percent returns a Basis of p percent.
func Percent(p float64) Basis {
	return Basis{kind: PercentBasis, percent: p}
}

// Amount returns a fixed-amount Basis.
func Amount(a decimal.Decimal) Basis {
	return Basis{kind: AmountBasis, amount: a}
}

// AmountFloat returns a fixed-amount Basis from a float, rounded to cents.
func AmountFloat(a float64) Basis {
	return Amount(decimal.NewFromFloat(a).Round(2))
}

// Kind returns the variant of b.
func (b Basis) Kind() BasisKind {
	return b.kind
}

// IsPercent reports whether b is a percentage.
func (b Basis) IsPercent() bool {
	return b.kind == PercentBasis
}

// PercentValue returns the percentage; zero for an amount basis.
func (b Basis) PercentValue() float64 {
	if b.kind != PercentBasis {
		return 0
	}
	return b.percent
}

// AmountValue returns the fixed amount; zero for a percent basis.
func (b Basis) AmountValue() decimal.Decimal {
	if b.kind != AmountBasis {
		return decimal.Zero
	}
	return b.amount
}

// Resolve turns b into money against reference, which is only consulted for a
// percent basis.
func (b Basis) Resolve(reference float64) float64 {
	if b.kind == AmountBasis {
		return b.amount.InexactFloat64()
	}
	return mathutil.ApplyPercentage(reference, b.percent)
}

// IsNegative reports whether the entered value is below zero.
func (b Basis) IsNegative() bool {
	if b.kind == AmountBasis {
		return b.amount.IsNegative()
	}
	return b.percent < 0
}

// String renders a percent basis as "2.5%" and an amount basis with two
// fractional digits.
func (b Basis) String() string {
	if b.kind == AmountBasis {
		return b.amount.StringFixed(2)
	}
	return strconv.FormatFloat(b.percent, 'f', -1, 64) + "%"
}
