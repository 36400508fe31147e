package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication for vicare",
	Long: `Manage authentication for vicare CLI commands.

The auth command group provides subcommands to login, logout, check status,
and refresh the OAuth token used against the Viessmann identity provider.

Examples:
  vicare auth login                    # Browser-based OAuth login
  vicare auth login --password         # Legacy resource-owner password grant
  vicare auth status                   # Show authentication status
  vicare auth refresh                  # Force token refresh
  vicare auth logout                   # Delete the stored token`,
}

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored authentication token",
	Long: `Delete the stored OAuth token.

This removes the cached token record, requiring you to re-authenticate on
the next API call.`,
	RunE: runAuthLogout,
}

// authRefreshCmd represents the auth refresh command
var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force token refresh",
	Long: `Force a refresh of the authentication token.

This exchanges the stored refresh token for a fresh access token, which
can be useful if you are experiencing authentication issues. The refresh
grant requires a client secret in the configuration.`,
	RunE: runAuthRefresh,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		return err
	}

	if err := authenticator.Logout(); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	printQuiet("Logged out.\n")
	return nil
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		return err
	}

	printQuiet("Refreshing token...\n")
	if err := authenticator.Refresh(cmd.Context()); err != nil {
		return classifyAuthError(err)
	}

	printQuiet("Token refreshed successfully.\n")
	return nil
}
