package upstream

import (
	"errors"
	"fmt"
)

// HTTPError is returned when the upstream answers with a non-2xx status.
// Body holds the raw response body.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// TransportError is returned when no HTTP response could be obtained
// (connection refused, DNS failure, timeout, truncated body).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsHTTPError reports whether err carries an upstream HTTP response and returns it.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsTransportError reports whether err is a network-level upstream fault.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
