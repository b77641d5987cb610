package buoy

import "fmt"

// ParseError indicates a station report that could not be understood.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed buoy report: %s", e.Message)
}

func newParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// UnavailableError is the soft failure for a buoy fetch. Network and parse
// failures both surface as this so callers can fall back to the model
// instead of treating the failure as fatal.
type UnavailableError struct {
	StationID string
	Err       error
}

func (e *UnavailableError) Error() string {
	if e.StationID != "" {
		return fmt.Sprintf("buoy %s unavailable: %v", e.StationID, e.Err)
	}
	return fmt.Sprintf("buoy unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
