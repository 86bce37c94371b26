// Package constants provides shared constants for the loan engine.
package constants

// DateLayout is the format expected for dates in config files and is also the
// output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100

	// DefaultDecimalPlaces is the precision for currency rounding (2 decimal places)
	DefaultDecimalPlaces = 2
)

// RateCeilingPercent is the maximum annual interest rate (percent) accepted
// by validation and used as the upper bisection bracket in the APR solver.
const RateCeilingPercent = 100

// APR solver constants
const (
	// APRTolerancePercent is the solver stop tolerance expressed in
	// percentage points of annual rate.
	APRTolerancePercent = 0.0001

	// APRMaxIterations caps the bisection loop so it always terminates.
	APRMaxIterations = 200
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// DefaultConfigFile is the default configuration file name
const DefaultConfigFile = "config.yaml"
