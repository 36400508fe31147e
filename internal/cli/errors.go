package cli

import (
	"errors"
	"fmt"
)

// Process exit codes. Scripts drive off these, so they are part of the CLI
// contract.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitAuthRequired = 2
	ExitAuthFailed   = 3
)

// AuthRequiredError indicates no usable credentials are available and an
// interactive login is needed.
type AuthRequiredError struct{}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthRequiredError) Error() string {
	return `Authentication required

To authenticate, run:
  vicare auth login

To check current authentication status:
  vicare auth status`
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthRequiredError) Is(target error) bool {
	_, ok := target.(*AuthRequiredError)
	return ok
}

// AuthFailedError indicates an authentication attempt was made and rejected.
type AuthFailedError struct {
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthFailedError) Error() string {
	return fmt.Sprintf(`Authentication failed: %v

To retry authentication, run:
  vicare auth login`, e.Reason)
}

// Unwrap returns the underlying error.
func (e *AuthFailedError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthFailedError) Is(target error) bool {
	_, ok := target.(*AuthFailedError)
	return ok
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var authRequired *AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitAuthRequired
	}

	var authFailed *AuthFailedError
	if errors.As(err, &authFailed) {
		return ExitAuthFailed
	}

	return ExitError
}
