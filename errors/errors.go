package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Staffing calculation failures. InvalidInput is a usage error the operator can
// correct; InvalidConfiguration means a profile or workforce constant is broken.
var (
	ErrInvalidInput         = fmt.Errorf("invalid input")
	ErrInvalidConfiguration = fmt.Errorf("invalid configuration")
)

// Forecast provider failures. These only block the forecast path.
var (
	ErrForecastUnavailable = fmt.Errorf("forecast unavailable")
	ErrHistoryUnavailable  = fmt.Errorf("historical data unavailable")
	ErrUnknownPractitioner = fmt.Errorf("unknown practitioner type")
	ErrInvalidPeriod       = fmt.Errorf("invalid period")
)

// Define specific error types for better error handling
var (
	ErrMissingColumn     = fmt.Errorf("missing column")
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidMonth      = fmt.Errorf("invalid month")
	ErrInvalidCount      = fmt.Errorf("invalid visit count")
	ErrInvalidForecast   = fmt.Errorf("invalid forecast value")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)
