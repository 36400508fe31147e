package cmd

import (
	"errors"
	"fmt"
	"time"

	"vicare/internal/auth"
	"vicare/internal/cli"
	"vicare/internal/config"
	"vicare/pkg/vicare"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// loadConfig loads the effective configuration from --config-path and the
// environment.
func loadConfig() (config.Config, error) {
	return config.LoadConfig(configPath)
}

// buildAuthenticator wires an authenticator against the configured token
// file. The authorization URL is always surfaced so the flow can be
// completed manually when no browser opens.
func buildAuthenticator(cfg config.Config) (*auth.Authenticator, error) {
	ac := cfg.AuthConfig()
	ac.OnAuthURL = func(u string) {
		if !quiet {
			fmt.Println("Opening browser for authorization. If it does not open, visit:")
			fmt.Println("  " + u)
		}
	}
	return auth.NewAuthenticator(ac, auth.NewFileStore(cfg.TokenFile))
}

// apiSetup builds the configured client stack for data commands.
func apiSetup() (*auth.Authenticator, *vicare.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := vicare.NewClient(authenticator, vicare.WithBaseURL(cfg.APIURL))
	if err != nil {
		return nil, nil, err
	}
	return authenticator, client, nil
}

// classifyAuthError maps authentication failures to the CLI's typed errors
// so Execute can exit with the documented codes. Non-auth errors pass
// through unchanged.
func classifyAuthError(err error) error {
	if err == nil {
		return nil
	}

	var tokenErr *auth.TokenRequestError
	var authzErr *auth.AuthorizationError
	switch {
	case errors.As(err, &tokenErr),
		errors.As(err, &authzErr),
		errors.Is(err, auth.ErrCallbackTimeout),
		errors.Is(err, auth.ErrStateMismatch),
		errors.Is(err, auth.ErrMalformedCallback):
		return &cli.AuthFailedError{Reason: err}
	case errors.Is(err, auth.ErrNoToken):
		return &cli.AuthRequiredError{}
	}
	return err
}

// runWithSpinner runs fn with a progress spinner unless --quiet is set.
func runWithSpinner(suffix string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	return fn()
}

// printQuiet prints output only if the --quiet flag is not set.
// Use this for progress messages and non-essential output.
func printQuiet(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format, args...)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "expired"
	}
	if d < time.Minute {
		return "< 1 minute"
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// formatExpiryWithDirection formats a time as "in X" or "expired X ago".
func formatExpiryWithDirection(expiresAt time.Time) string {
	remaining := time.Until(expiresAt)
	if remaining > 0 {
		return "in " + formatDuration(remaining)
	}
	expiredAgo := -remaining
	return text.FgYellow.Sprintf("expired %s ago", formatDuration(expiredAgo))
}
