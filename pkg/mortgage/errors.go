package mortgage

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is against a *CalculationError.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNonConverging = errors.New("schedule does not converge")
)

// ErrorKind classifies a CalculationError.
type ErrorKind int

const (
	// InvalidInput means a structural precondition on the parameters is violated.
	InvalidInput ErrorKind = iota + 1
	// NonConverging means the schedule cannot reach a zero balance.
	NonConverging
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case NonConverging:
		return "NonConverging"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// CalculationError is the typed failure returned by the engine and the
// aggregator. Field names the offending parameter for InvalidInput; Month is the
// 1-based month at which a NonConverging schedule stalled.
type CalculationError struct {
	Kind   ErrorKind
	Field  string
	Month  int
	Reason string
	Err    error
}

func (e *CalculationError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.sentinel(), e.Field, e.Reason)
	case e.Month > 0:
		return fmt.Sprintf("%s at month %d: %s", e.sentinel(), e.Month, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.sentinel(), e.Reason)
	}
}

// Unwrap exposes both the kind sentinel and any underlying cause.
func (e *CalculationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.sentinel(), e.Err}
	}
	return []error{e.sentinel()}
}

func (e *CalculationError) sentinel() error {
	if e.Kind == NonConverging {
		return ErrNonConverging
	}
	return ErrInvalidInput
}

func invalidInput(field, format string, args ...any) *CalculationError {
	return &CalculationError{Kind: InvalidInput, Field: field, Reason: fmt.Sprintf(format, args...)}
}
