package config

import (
	"fmt"

	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
)

// ToBasis converts the config value into a mortgage.Basis. fallback is used
// when neither variant is set.
func (b *BasisConfig) ToBasis(field string, fallback mortgage.Basis) (mortgage.Basis, error) {
	if b == nil || b.isEmpty() {
		return fallback, nil
	}
	if b.Percent != nil && b.Amount != nil {
		return mortgage.Basis{}, fmt.Errorf("%s: set either percent or amount, not both", field)
	}
	if b.Amount != nil {
		return mortgage.AmountFloat(*b.Amount), nil
	}
	return mortgage.Percent(*b.Percent), nil
}

// FromBasis converts a mortgage.Basis back into its config form.
func FromBasis(basis mortgage.Basis) *BasisConfig {
	if basis.IsPercent() {
		percent := basis.PercentValue()
		return &BasisConfig{Percent: &percent}
	}
	amount := basis.AmountValue().InexactFloat64()
	return &BasisConfig{Amount: &amount}
}

// ToParameters converts the mortgage section into engine parameters. It only
// fails on a malformed basis; range checks are left to
// mortgage.InputParameters.Validate.
func (m MortgageConfig) ToParameters() (mortgage.InputParameters, error) {
	m.ApplyDefaults()

	params := mortgage.InputParameters{
		HouseValue:             m.HouseValue,
		HOAFeeMonthly:          m.HOAFee,
		InterestRateAnnual:     m.InterestRate,
		AppreciationRateAnnual: m.AppreciationRate,
		TermYears:              m.TermYears,
		ExtraPrincipalMonthly:  m.ExtraPrincipal,
		CostOfCapitalRate:      m.InterestRate,
	}
	if m.CostOfCapitalRate != nil {
		params.CostOfCapitalRate = *m.CostOfCapitalRate
	}

	bases := []struct {
		field  string
		source *BasisConfig
		target *mortgage.Basis
	}{
		{"downPayment", m.DownPayment, &params.DownPayment},
		{"propertyTax", m.PropertyTax, &params.PropertyTax},
		{"insurance", m.Insurance, &params.Insurance},
		{"maintenance", m.Maintenance, &params.Maintenance},
		{"pmi", m.PMI, &params.PMI},
	}
	for _, b := range bases {
		basis, err := b.source.ToBasis(b.field, mortgage.Percent(0))
		if err != nil {
			return mortgage.InputParameters{}, err
		}
		*b.target = basis
	}

	return params, nil
}

// FromParameters converts engine parameters into the config form, e.g. for
// echoing the values a run used.
func FromParameters(params mortgage.InputParameters) MortgageConfig {
	costOfCapital := params.CostOfCapitalRate
	return MortgageConfig{
		HouseValue:        params.HouseValue,
		DownPayment:       FromBasis(params.DownPayment),
		HOAFee:            params.HOAFeeMonthly,
		InterestRate:      params.InterestRateAnnual,
		PropertyTax:       FromBasis(params.PropertyTax),
		Insurance:         FromBasis(params.Insurance),
		Maintenance:       FromBasis(params.Maintenance),
		PMI:               FromBasis(params.PMI),
		AppreciationRate:  params.AppreciationRateAnnual,
		TermYears:         params.TermYears,
		ExtraPrincipal:    params.ExtraPrincipalMonthly,
		CostOfCapitalRate: &costOfCapital,
	}
}
