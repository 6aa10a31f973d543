// Package interactive implements the full-screen terminal form and schedule
// viewer. Update and Render are pure; Session owns the terminal.
package interactive

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
	"github.com/iwvelando/mortgage-forecast/pkg/validation"
)

// FieldID identifies one step of the input form.
type FieldID int

// Form fields in the order they are asked for.
const (
	FieldHouseValue FieldID = iota
	FieldDownPayment
	FieldHOAFee
	FieldInterestRate
	FieldPropertyTax
	FieldInsurance
	FieldMaintenance
	FieldPMI
	FieldAppreciationRate
	FieldTermYears
	FieldExtraPrincipal

	fieldCount
)

// FieldCount is the number of steps in the form.
const FieldCount = int(fieldCount)

// Field is the editing buffer of one form step. Basis fields keep a separate
// buffer for each variant so toggling does not lose what was typed.
type Field struct {
	Label         string
	Help          string
	Percent       string
	Amount        string
	UsePercent    bool
	Toggle        bool // Tab switches between percent and amount
	AllowNegative bool
	Integer       bool
}

// Text returns the buffer being edited.
func (f Field) Text() string {
	if f.Toggle && !f.UsePercent {
		return f.Amount
	}
	return f.Percent
}

func (f *Field) setText(text string) {
	if f.Toggle && !f.UsePercent {
		f.Amount = text
		return
	}
	f.Percent = text
}

// Accepts reports whether r may be appended to the buffer.
func (f Field) Accepts(r rune) bool {
	if f.Integer && r == '.' {
		return false
	}
	return validation.AcceptsInputRune(f.Text(), r, f.AllowNegative)
}

// Form is the complete set of form buffers. It is a value; copies are
// independent.
type Form struct {
	Fields [fieldCount]Field
}

// NewForm seeds the form from a mortgage configuration with defaults applied.
// A zero house value leaves that field empty.
func NewForm(m config.MortgageConfig) Form {
	m.ApplyDefaults()

	var form Form
	form.Fields[FieldHouseValue] = Field{Label: "House value", Help: "Purchase price of the home in dollars"}
	if m.HouseValue > 0 {
		form.Fields[FieldHouseValue].Percent = number(m.HouseValue)
	}
	form.Fields[FieldDownPayment] = basisField("Down payment", "Percent of the house value, or a dollar amount", m.DownPayment)
	form.Fields[FieldHOAFee] = Field{Label: "HOA fee", Help: "Monthly homeowners association fee", Percent: number(m.HOAFee)}
	form.Fields[FieldInterestRate] = Field{Label: "Interest rate", Help: "Annual mortgage rate in percent", Percent: number(m.InterestRate)}
	form.Fields[FieldPropertyTax] = basisField("Property tax", "Annual, percent of the house value or a dollar amount", m.PropertyTax)
	form.Fields[FieldInsurance] = basisField("Insurance", "Annual, percent of the house value or a dollar amount", m.Insurance)
	form.Fields[FieldMaintenance] = basisField("Maintenance", "Annual, percent of the house value or a dollar amount", m.Maintenance)
	form.Fields[FieldPMI] = basisField("PMI", "Annual, percent of the loan or a dollar amount; charged below 20% equity", m.PMI)
	form.Fields[FieldAppreciationRate] = Field{
		Label: "Appreciation rate", Help: "Annual change in house value in percent, may be negative",
		Percent: number(m.AppreciationRate), AllowNegative: true,
	}
	form.Fields[FieldTermYears] = Field{
		Label: "Loan term", Help: "Length of the loan in years",
		Percent: strconv.Itoa(m.TermYears), Integer: true,
	}
	form.Fields[FieldExtraPrincipal] = Field{
		Label: "Extra principal", Help: "Additional principal paid every month",
		Percent: number(m.ExtraPrincipal),
	}
	return form
}

func basisField(label, help string, b *config.BasisConfig) Field {
	f := Field{Label: label, Help: help, Toggle: true, UsePercent: true}
	if b == nil {
		return f
	}
	if b.Percent != nil {
		f.Percent = number(*b.Percent)
	}
	if b.Amount != nil {
		f.Amount = number(*b.Amount)
		f.UsePercent = b.Percent == nil
	}
	return f
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Parameters parses every buffer into engine parameters. costOfCapital nil
// means the interest rate.
func (f Form) Parameters(costOfCapital *float64) (mortgage.InputParameters, error) {
	var params mortgage.InputParameters
	var err error

	scalars := []struct {
		id     FieldID
		name   string
		target *float64
	}{
		{FieldHouseValue, "houseValue", &params.HouseValue},
		{FieldHOAFee, "hoaFee", &params.HOAFeeMonthly},
		{FieldInterestRate, "interestRate", &params.InterestRateAnnual},
		{FieldAppreciationRate, "appreciationRate", &params.AppreciationRateAnnual},
		{FieldExtraPrincipal, "extraPrincipal", &params.ExtraPrincipalMonthly},
	}
	for _, s := range scalars {
		if *s.target, err = validation.ParseNumber(s.name, f.Fields[s.id].Text()); err != nil {
			return mortgage.InputParameters{}, err
		}
	}

	bases := []struct {
		id     FieldID
		name   string
		target *mortgage.Basis
	}{
		{FieldDownPayment, "downPayment", &params.DownPayment},
		{FieldPropertyTax, "propertyTax", &params.PropertyTax},
		{FieldInsurance, "insurance", &params.Insurance},
		{FieldMaintenance, "maintenance", &params.Maintenance},
		{FieldPMI, "pmi", &params.PMI},
	}
	for _, b := range bases {
		field := f.Fields[b.id]
		value, err := validation.ParseAmount(b.name, field.Text())
		if err != nil {
			return mortgage.InputParameters{}, err
		}
		if field.UsePercent {
			*b.target = mortgage.Percent(value.InexactFloat64())
		} else {
			*b.target = mortgage.Amount(value.Round(2))
		}
	}

	term, err := strconv.Atoi(f.Fields[FieldTermYears].Text())
	if err != nil {
		return mortgage.InputParameters{}, fmt.Errorf("termYears: %q is not a whole number of years", f.Fields[FieldTermYears].Text())
	}
	params.TermYears = term

	params.CostOfCapitalRate = params.InterestRateAnnual
	if costOfCapital != nil {
		params.CostOfCapitalRate = *costOfCapital
	}
	return params, nil
}
