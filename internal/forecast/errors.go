package forecast

import "fmt"

// CalculationError means reconciliation could not proceed, e.g. the forecast
// path needs both the model trend and a buoy observation and one was missing.
// It is not retried here; the caller re-fetches on its own schedule.
type CalculationError struct {
	Message string
	Err     error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast calculation failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("forecast calculation failed: %s", e.Message)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError creates a new calculation error
func NewCalculationError(message string, err error) *CalculationError {
	return &CalculationError{Message: message, Err: err}
}
