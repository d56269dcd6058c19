package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Error kinds reported by providers.
var (
	// ErrInvalidArgument is returned when the source text or model is empty.
	ErrInvalidArgument = errors.New("invalid generation argument")

	// ErrProviderUnavailable covers network failures, timeouts and non-2xx
	// responses from the external model API.
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrMalformedResponse is returned when the reply cannot be parsed into
	// proposals or contains none.
	ErrMalformedResponse = errors.New("malformed response from language model")
)

// maxBodyInError bounds how much of an upstream body is kept for diagnostics.
const maxBodyInError = 1024

// ProviderError carries the diagnostic context of a failed provider call.
// Body holds the raw upstream reply and must never be sent to API clients.
type ProviderError struct {
	Kind       error
	Provider   string
	Message    string
	StatusCode int
	Body       string
	Timeout    bool
	Err        error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Provider, e.Kind)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// InvalidArgument reports a violated precondition.
func InvalidArgument(provider, message string) *ProviderError {
	return &ProviderError{Kind: ErrInvalidArgument, Provider: provider, Message: message}
}

// Unavailable reports a non-2xx reply from the upstream API.
func Unavailable(provider string, statusCode int, body string) *ProviderError {
	return &ProviderError{
		Kind:       ErrProviderUnavailable,
		Provider:   provider,
		Message:    "upstream returned an error status",
		StatusCode: statusCode,
		Body:       truncate(body, maxBodyInError),
	}
}

// TransportFailure classifies an error from the HTTP round trip or SDK call.
// Deadline and timeout errors are flagged so callers can phrase them as such.
func TransportFailure(provider string, err error) *ProviderError {
	pe := &ProviderError{
		Kind:     ErrProviderUnavailable,
		Provider: provider,
		Message:  "request failed",
		Err:      err,
	}
	if isTimeout(err) {
		pe.Timeout = true
		pe.Message = "request timed out"
	}
	return pe
}

// Malformed reports a reply that does not contain usable proposals.
func Malformed(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Kind:     ErrMalformedResponse,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// IsTimeout reports whether err is a provider timeout.
func IsTimeout(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Timeout
	}
	return isTimeout(err)
}

// IsRetryable reports whether a failed call may succeed when repeated.
// Timeouts are excluded because the caller's deadline is usually spent.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) && !IsTimeout(err) &&
		!errors.Is(err, context.Canceled)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
