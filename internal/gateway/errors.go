package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"
)

// ErrSessionExpired matches any HTTPError with status 401.
var ErrSessionExpired = errors.New("session expired")

// HTTPError is a response received with a failure status.
type HTTPError struct {
	StatusCode int
	Envelope   Envelope
}

// Error implements error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Envelope.Message)
}

// Is reports 401 responses as ErrSessionExpired.
func (e *HTTPError) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// NetworkError is a failure where no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

// Error implements error.
func (e *NetworkError) Error() string {
	if isConnectionRefused(e.Err) {
		return fmt.Sprintf("API server not running at %s", e.URL)
	}
	return fmt.Sprintf("sending request %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request timed out.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

func isConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		strings.Contains(err.Error(), "connection refused")
}

// Message returns text suitable for showing a user what went wrong.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Envelope.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "the server took too long to respond"
		}
		return "could not reach the server"
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
