package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"vicare/internal/auth"
	"vicare/internal/cli"
)

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "expired"},
		{30 * time.Second, "< 1 minute"},
		{time.Minute, "1 minute"},
		{45 * time.Minute, "45 minutes"},
		{time.Hour, "1 hour"},
		{5 * time.Hour, "5 hours"},
		{24 * time.Hour, "1 day"},
		{72 * time.Hour, "3 days"},
	}

	for _, tc := range testCases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatExpiryWithDirection(t *testing.T) {
	future := formatExpiryWithDirection(time.Now().Add(2 * time.Hour))
	if !strings.HasPrefix(future, "in ") {
		t.Errorf("future expiry = %q, want an 'in ...' phrasing", future)
	}

	past := formatExpiryWithDirection(time.Now().Add(-2 * time.Hour))
	if !strings.Contains(past, "ago") {
		t.Errorf("past expiry = %q, want an '... ago' phrasing", past)
	}
}

func TestClassifyAuthError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil", nil, cli.ExitOK},
		{"plain error", errors.New("boom"), cli.ExitError},
		{"token request failure", &auth.TokenRequestError{Grant: "refresh_token", StatusCode: 400}, cli.ExitAuthFailed},
		{"provider denial", &auth.AuthorizationError{Code: "access_denied"}, cli.ExitAuthFailed},
		{"callback timeout", auth.ErrCallbackTimeout, cli.ExitAuthFailed},
		{"state mismatch", auth.ErrStateMismatch, cli.ExitAuthFailed},
		{"wrapped token failure", fmt.Errorf("login: %w", &auth.TokenRequestError{Grant: "password"}), cli.ExitAuthFailed},
		{"no stored token", auth.ErrNoToken, cli.ExitAuthRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := cli.ExitCode(classifyAuthError(tc.err))
			if got != tc.wantCode {
				t.Errorf("exit code = %d, want %d", got, tc.wantCode)
			}
		})
	}
}
