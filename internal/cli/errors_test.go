package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
	}{
		{"no error", nil, ExitOK},
		{"generic error", errors.New("boom"), ExitError},
		{"auth required", &AuthRequiredError{}, ExitAuthRequired},
		{"auth failed", &AuthFailedError{Reason: errors.New("denied")}, ExitAuthFailed},
		{"wrapped auth required", fmt.Errorf("context: %w", &AuthRequiredError{}), ExitAuthRequired},
		{"wrapped auth failed", fmt.Errorf("context: %w", &AuthFailedError{Reason: errors.New("denied")}), ExitAuthFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, ExitCode(tc.err))
		})
	}
}

func TestAuthFailedError_Unwrap(t *testing.T) {
	cause := errors.New("token endpoint said no")
	err := &AuthFailedError{Reason: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "token endpoint said no")
	assert.Contains(t, err.Error(), "vicare auth login")
}

func TestAuthRequiredError_Message(t *testing.T) {
	err := &AuthRequiredError{}
	assert.Contains(t, err.Error(), "vicare auth login")
	assert.Contains(t, err.Error(), "vicare auth status")
}
