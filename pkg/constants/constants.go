// Package constants provides shared constants for the mortgage-forecast application.
package constants

// DateTimeLayout is the format of the optional loan start date and of the month
// labels derived from it.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of fractional digits used when rendering money
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PMIEquityThreshold is the equity share at which mortgage insurance is cancelled
	PMIEquityThreshold = 0.20

	// MinAppreciationRate is the exclusive lower bound on the annual appreciation
	// percentage; at or below it the monthly growth factor is no longer positive.
	MinAppreciationRate = -PercentageMultiplier * MonthsPerYear

	// MaxTermYears is the longest loan term accepted
	MaxTermYears = 50
)

// Defaults of the input form, used whenever a value is not configured.
const (
	DefaultDownPaymentPercent = 20.0
	DefaultHOAFee             = 0.0
	DefaultInterestRate       = 6.5
	DefaultPropertyTaxPercent = 2.0
	DefaultInsurancePercent   = 0.35
	DefaultMaintenancePercent = 1.0
	DefaultPMIPercent         = 0.5
	DefaultAppreciationRate   = 3.0
	DefaultTermYears          = 30
	DefaultExtraPrincipal     = 0.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatInteractive runs the terminal form and spreadsheet views
	OutputFormatInteractive = "interactive"
)

// Export file names
const (
	// SpreadsheetFileName holds the month-by-month schedule
	SpreadsheetFileName = "mortgage_spreadsheet.csv"

	// AnalysisFileName holds the parameters and the summary statistics
	AnalysisFileName = "mortgage_analysis.csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "mortgage.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "mortgage.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes every environment override, e.g. MORTGAGE_MORTGAGE_HOUSEVALUE
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024
)
