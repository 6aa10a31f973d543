package mortgage_test

import (
	"testing"

	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBasis_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		basis     mortgage.Basis
		reference float64
		expected  float64
	}{
		{"percent of reference", mortgage.Percent(20), 300000, 60000},
		{"fractional percent", mortgage.Percent(0.35), 400000, 1400},
		{"zero value is zero percent", mortgage.Basis{}, 500000, 0},
		{"amount ignores reference", mortgage.Amount(decimal.RequireFromString("4500.50")), 300000, 4500.50},
		{"amount float rounds to cents", mortgage.AmountFloat(99.999), 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.basis.Resolve(tt.reference), 1e-9)
		})
	}
}

func TestBasis_Accessors(t *testing.T) {
	p := mortgage.Percent(2.5)
	assert.True(t, p.IsPercent())
	assert.Equal(t, mortgage.PercentBasis, p.Kind())
	assert.Equal(t, 2.5, p.PercentValue())
	assert.True(t, p.AmountValue().IsZero())
	assert.Equal(t, "2.5%", p.String())

	a := mortgage.AmountFloat(1200)
	assert.False(t, a.IsPercent())
	assert.Equal(t, mortgage.AmountBasis, a.Kind())
	assert.Zero(t, a.PercentValue())
	assert.Equal(t, "1200.00", a.String())

	assert.True(t, mortgage.Percent(-1).IsNegative())
	assert.True(t, mortgage.AmountFloat(-0.01).IsNegative())
	assert.False(t, mortgage.AmountFloat(0).IsNegative())
}

func TestInputParameters_Derived(t *testing.T) {
	params := mortgage.InputParameters{
		HouseValue:  350000,
		DownPayment: mortgage.AmountFloat(50000),
		PMI:         mortgage.Percent(0.6),
		TermYears:   15,
	}

	assert.Equal(t, 50000.0, params.DownPaymentAmount())
	assert.Equal(t, 300000.0, params.LoanAmount())
	assert.Equal(t, 180, params.TermMonths())
	assert.InDelta(t, 150.0, params.PMIMonthly(), 1e-9)
	assert.NoError(t, params.Validate())
}
