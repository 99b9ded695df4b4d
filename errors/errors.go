package errors

import "fmt"

// ConfigurationError reports a generation request that cannot be run.
// It is always returned before any sampling starts.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("configuration error in %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v (value: %v)", e.Field, e.Err, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LocaleWarning is the non-fatal UnsupportedLocaleWarning: the requested
// locale is not supported and Fallback was used instead.
type LocaleWarning struct {
	Requested string
	Fallback  string
}

func (w *LocaleWarning) Error() string {
	return fmt.Sprintf("unsupported locale %q, falling back to %s", w.Requested, w.Fallback)
}

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

// Configuration failures
var (
	ErrInvalidDate         = fmt.Errorf("invalid date, expected YYYY-MM-DD")
	ErrDateOrder           = fmt.Errorf("end date precedes start date")
	ErrInvalidRecordCount  = fmt.Errorf("record count must be positive")
	ErrInvalidNameCount    = fmt.Errorf("name pool size must be positive")
	ErrProbabilityLength   = fmt.Errorf("number of agency probabilities must match number of selected agencies")
	ErrProbabilitySum      = fmt.Errorf("agency probabilities must sum to 1")
	ErrInvalidProbability  = fmt.Errorf("invalid agency probability")
	ErrEmptyAgencyUniverse = fmt.Errorf("no valid agencies selected")
	ErrInvalidSeed         = fmt.Errorf("seed must be an unsigned integer")
	ErrInvalidFormat       = fmt.Errorf("unsupported output format")
	ErrInvalidPort         = fmt.Errorf("port must be between 1 and 65535")
)

// CSV read failures
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidHeader     = fmt.Errorf("invalid header")
	ErrInvalidTimestamp  = fmt.Errorf("invalid timestamp")
	ErrInvalidInteger    = fmt.Errorf("invalid integer")
	ErrUnknownAgency     = fmt.Errorf("unknown agency")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)
