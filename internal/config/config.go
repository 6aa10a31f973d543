// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/iwvelando/mortgage-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-forecast.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty" json:"output,omitempty"`
	Mortgage MortgageConfig `yaml:"mortgage" json:"mortgage"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`       // pretty, csv, interactive
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"` // where exports are written
}

// MortgageConfig holds the mortgage parameters as they appear in the config
// file. Rates are annual percentages.
type MortgageConfig struct {
	HouseValue        float64      `yaml:"houseValue" json:"houseValue" mapstructure:"houseValue"`
	DownPayment       *BasisConfig `yaml:"downPayment,omitempty" json:"downPayment,omitempty" mapstructure:"downPayment"`
	HOAFee            float64      `yaml:"hoaFee" json:"hoaFee" mapstructure:"hoaFee"`
	InterestRate      float64      `yaml:"interestRate" json:"interestRate" mapstructure:"interestRate"`
	PropertyTax       *BasisConfig `yaml:"propertyTax,omitempty" json:"propertyTax,omitempty" mapstructure:"propertyTax"`
	Insurance         *BasisConfig `yaml:"insurance,omitempty" json:"insurance,omitempty" mapstructure:"insurance"`
	Maintenance       *BasisConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" mapstructure:"maintenance"`
	PMI               *BasisConfig `yaml:"pmi,omitempty" json:"pmi,omitempty" mapstructure:"pmi"`
	AppreciationRate  float64      `yaml:"appreciationRate" json:"appreciationRate" mapstructure:"appreciationRate"`
	TermYears         int          `yaml:"termYears" json:"termYears" mapstructure:"termYears"`
	ExtraPrincipal    float64      `yaml:"extraPrincipal" json:"extraPrincipal" mapstructure:"extraPrincipal"`
	CostOfCapitalRate *float64     `yaml:"costOfCapitalRate,omitempty" json:"costOfCapitalRate,omitempty" mapstructure:"costOfCapitalRate"`
	StartDate         string       `yaml:"startDate,omitempty" json:"startDate,omitempty" mapstructure:"startDate"` // first payment month, YYYY-MM
}

// BasisConfig is a value given either as a percentage or as a fixed amount.
// Exactly one of the two may be set.
type BasisConfig struct {
	Percent *float64 `yaml:"percent,omitempty" json:"percent,omitempty" mapstructure:"percent"`
	Amount  *float64 `yaml:"amount,omitempty" json:"amount,omitempty" mapstructure:"amount"`
}

var basisKeys = []string{"downPayment", "propertyTax", "insurance", "maintenance", "pmi"}

var scalarKeys = []string{
	"houseValue", "hoaFee", "interestRate", "appreciationRate",
	"termYears", "extraPrincipal", "costOfCapitalRate", "startDate",
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with MORTGAGE_ override
// file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads configuration of the given type (yaml or
// json) from r.
func LoadConfigurationFromReader(r io.Reader, configType string) (*Configuration, error) {
	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// LoadDefaults builds a configuration from defaults and environment variables
// alone, for runs without a config file.
func LoadDefaults() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.directory", ".")
	v.SetDefault("mortgage.hoaFee", constants.DefaultHOAFee)
	v.SetDefault("mortgage.interestRate", constants.DefaultInterestRate)
	v.SetDefault("mortgage.appreciationRate", constants.DefaultAppreciationRate)
	v.SetDefault("mortgage.termYears", constants.DefaultTermYears)
	v.SetDefault("mortgage.extraPrincipal", constants.DefaultExtraPrincipal)

	// Keys without a default are only visible to Unmarshal once bound.
	_ = v.BindEnv("logging.outputFile")
	for _, key := range scalarKeys {
		_ = v.BindEnv("mortgage." + key)
	}
	for _, key := range basisKeys {
		_ = v.BindEnv("mortgage." + key + ".percent")
		_ = v.BindEnv("mortgage." + key + ".amount")
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Mortgage.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills every unset basis and the loan term with the values a new
// form starts with. An unset cost of capital rate stays unset and follows the
// interest rate.
func (m *MortgageConfig) ApplyDefaults() {
	defaults := []struct {
		target  **BasisConfig
		percent float64
	}{
		{&m.DownPayment, constants.DefaultDownPaymentPercent},
		{&m.PropertyTax, constants.DefaultPropertyTaxPercent},
		{&m.Insurance, constants.DefaultInsurancePercent},
		{&m.Maintenance, constants.DefaultMaintenancePercent},
		{&m.PMI, constants.DefaultPMIPercent},
	}
	for _, d := range defaults {
		if *d.target == nil || (*d.target).isEmpty() {
			percent := d.percent
			*d.target = &BasisConfig{Percent: &percent}
		}
	}
	if m.TermYears == 0 {
		m.TermYears = constants.DefaultTermYears
	}
}

func (b *BasisConfig) isEmpty() bool {
	return b.Percent == nil && b.Amount == nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for values that are legal but probably not what the user
// meant.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	m := c.Mortgage

	if m.StartDate != "" {
		if err := validation.ValidateStartDate(m.StartDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("startDate ignored: %v", err))
		}
	}

	if m.InterestRate > 0 && m.InterestRate < 1 {
		warnings = append(warnings, fmt.Sprintf(
			"interestRate %.4f is below 1%%; rates are annual percentages (6.5 means 6.5%%)", m.InterestRate))
	}

	for _, b := range []struct {
		name  string
		basis *BasisConfig
	}{
		{"downPayment", m.DownPayment},
		{"propertyTax", m.PropertyTax},
		{"insurance", m.Insurance},
		{"maintenance", m.Maintenance},
		{"pmi", m.PMI},
	} {
		if b.basis != nil && b.basis.Percent != nil && *b.basis.Percent > 100 {
			warnings = append(warnings, fmt.Sprintf("%s of %.2f%% exceeds 100%%", b.name, *b.basis.Percent))
		}
	}

	if m.HouseValue > 0 && m.DownPayment != nil && m.PMI != nil {
		down := 0.0
		switch {
		case m.DownPayment.Percent != nil:
			down = mathutil.ApplyPercentage(m.HouseValue, *m.DownPayment.Percent)
		case m.DownPayment.Amount != nil:
			down = *m.DownPayment.Amount
		}
		pmiSet := (m.PMI.Percent != nil && *m.PMI.Percent > 0) || (m.PMI.Amount != nil && *m.PMI.Amount > 0)
		// Depreciation can pull the equity share back under the threshold.
		if pmiSet && m.AppreciationRate >= 0 && down/m.HouseValue >= constants.PMIEquityThreshold {
			warnings = append(warnings, "pmi is configured but the down payment already reaches 20% equity; no mortgage insurance will be charged")
		}
		if loan := m.HouseValue - down; loan > 0 && m.ExtraPrincipal > loan {
			warnings = append(warnings, fmt.Sprintf(
				"extraPrincipal %.2f exceeds the loan amount %.2f; the loan is paid off in the first month", m.ExtraPrincipal, loan))
		}
	}

	return warnings
}
