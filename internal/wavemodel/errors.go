package wavemodel

import "fmt"

// InvalidDataError indicates a malformed or empty payload from an upstream
// source. It is never retried by the engine; the caller decides what to do.
type InvalidDataError struct {
	Message string
	Err     error
}

func (e *InvalidDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid data: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid data: %s", e.Message)
}

func (e *InvalidDataError) Unwrap() error {
	return e.Err
}

// NewInvalidDataError creates a new invalid data error
func NewInvalidDataError(message string, err error) *InvalidDataError {
	return &InvalidDataError{Message: message, Err: err}
}
