package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// ErrorCategory classifies an upstream fetch failure. Retry behavior is
// decided per category by the RetryPolicy.
type ErrorCategory string

const (
	CategoryConnection  ErrorCategory = "connection"
	CategoryTimeout     ErrorCategory = "timeout"
	CategoryRateLimited ErrorCategory = "rateLimited"
	CategoryServerError ErrorCategory = "serverError"
	CategoryClientError ErrorCategory = "clientError"
	CategoryCertificate ErrorCategory = "certificateValidationFailed"
)

// ProviderError is a network or HTTP failure from an upstream provider.
// Status is zero when the request never produced a response.
type ProviderError struct {
	Category ErrorCategory
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error (%s): status %d", e.Category, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("provider error (%s): %v", e.Category, e.Err)
	}
	return fmt.Sprintf("provider error (%s)", e.Category)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// categorizeTransportError maps a transport-level error (no HTTP response)
// onto the taxonomy.
func categorizeTransportError(err error) *ProviderError {
	var certVerify *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var certInvalid x509.CertificateInvalidError
	if errors.As(err, &certVerify) || errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) || errors.As(err, &certInvalid) {
		return &ProviderError{Category: CategoryCertificate, Err: err}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ProviderError{Category: CategoryTimeout, Err: err}
	}

	return &ProviderError{Category: CategoryConnection, Err: err}
}

// categorizeStatus maps a non-2xx HTTP status onto the taxonomy.
func categorizeStatus(status int) *ProviderError {
	switch {
	case status == 429:
		return &ProviderError{Category: CategoryRateLimited, Status: status}
	case status >= 500:
		return &ProviderError{Category: CategoryServerError, Status: status}
	default:
		return &ProviderError{Category: CategoryClientError, Status: status}
	}
}
