package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authorization lifecycle.
var (
	// ErrEntropyUnavailable is returned when the secure random source cannot
	// supply bytes. There is no fallback to a weaker source.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrStateMismatch is returned when the state parameter on the callback
	// does not match the value bound to the in-flight authorization attempt.
	ErrStateMismatch = errors.New("state mismatch - possible CSRF attack")

	// ErrMalformedCallback is returned when the callback carries neither an
	// authorization code nor a provider error.
	ErrMalformedCallback = errors.New("callback carried neither code nor error")

	// ErrCallbackTimeout is returned when no qualifying callback arrives
	// within the configured window.
	ErrCallbackTimeout = errors.New("timed out waiting for authorization callback")

	// ErrMissingClientSecret is returned by the refresh grant when no client
	// secret is configured.
	ErrMissingClientSecret = errors.New("refresh grant requires a client secret")

	// ErrMissingCredentials is returned by the password grant when username,
	// password or client secret is absent.
	ErrMissingCredentials = errors.New("password grant requires username, password and client secret")

	// ErrNoToken is returned by a Store when no usable record exists.
	// Unreadable or corrupt data is reported the same way.
	ErrNoToken = errors.New("no token stored")
)

// AuthorizationError is an authorization failure reported by the identity
// provider on the redirect, e.g. error=access_denied.
type AuthorizationError struct {
	Code        string
	Description string
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("authorization failed: %s - %s", e.Code, e.Description)
	}
	return fmt.Sprintf("authorization failed: %s", e.Code)
}

// Is allows errors.Is() matching against the type.
func (e *AuthorizationError) Is(target error) bool {
	_, ok := target.(*AuthorizationError)
	return ok
}

// TokenRequestError is a failed credential exchange against the token
// endpoint. It carries the provider's status and body for diagnosis.
type TokenRequestError struct {
	// Grant is the grant type that failed: "authorization_code",
	// "refresh_token" or "password".
	Grant string

	// StatusCode is the HTTP status returned by the token endpoint.
	// Zero when the request never produced a response.
	StatusCode int

	// Body is the raw response body, if any.
	Body string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *TokenRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s grant failed: %v", e.Grant, e.Err)
	}
	return fmt.Sprintf("%s grant failed with status %d: %s", e.Grant, e.StatusCode, e.Body)
}

// Unwrap returns the underlying transport error for error chain inspection.
func (e *TokenRequestError) Unwrap() error {
	return e.Err
}
