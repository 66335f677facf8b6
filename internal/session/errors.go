package session

import "fmt"

// AuthError is a failed login or registration, carrying text that can be
// shown to the user.
type AuthError struct {
	Op      string // login, register
	Message string
	Err     error
}

// Error implements error.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error { return e.Err }
