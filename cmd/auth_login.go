package cmd

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// Login-specific flags
var loginPassword bool

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate to the Viessmann identity provider",
	Long: `Authenticate to the Viessmann identity provider using OAuth.

By default this initiates the browser-based authorization-code flow with
PKCE: a local listener captures the redirect and the resulting token is
stored for later commands.

With --password the legacy resource-owner password grant is used instead.
It prompts for your ViCare account credentials and requires a client
secret in the configuration.

Examples:
  vicare auth login              # Browser-based OAuth login
  vicare auth login --password   # Legacy password grant`,
	RunE: runAuthLogin,
}

func init() {
	authLoginCmd.Flags().BoolVar(&loginPassword, "password", false, "Use the legacy resource-owner password grant")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		return err
	}

	if loginPassword {
		username, password, err := promptCredentials()
		if err != nil {
			return err
		}
		if err := authenticator.AuthenticateWithPassword(cmd.Context(), username, password); err != nil {
			return classifyAuthError(err)
		}
		printQuiet("Authenticated.\n")
		return nil
	}

	err = runWithSpinner("Waiting for authorization in the browser...", func() error {
		return authenticator.Login(cmd.Context())
	})
	if err != nil {
		return classifyAuthError(err)
	}

	printQuiet("Authenticated.\n")
	return nil
}

// promptCredentials interactively reads the ViCare account credentials.
// The password is read without echo.
func promptCredentials() (string, string, error) {
	rl, err := readline.New("Username: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to open prompt: %w", err)
	}
	defer rl.Close()

	username, err := rl.Readline()
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}

	password, err := rl.ReadPassword("Password: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(username), string(password), nil
}
