package cmd

import (
	"errors"
	"fmt"

	"vicare/internal/auth"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication status.

This command displays whether a stored token exists, when it expires, and
whether a refresh token is available. It never contacts the network.`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.AccessToken != "" {
		fmt.Printf("Status:   %s\n", text.FgGreen.Sprint("Authenticated"))
		fmt.Println("          Using a pre-supplied access token; no refresh will be attempted.")
		return nil
	}

	rec, err := auth.NewFileStore(cfg.TokenFile).Load()
	if errors.Is(err, auth.ErrNoToken) {
		fmt.Printf("Status:   %s\n", text.FgYellow.Sprint("Not authenticated"))
		fmt.Println("          Run: vicare auth login")
		return nil
	}
	if err != nil {
		return err
	}

	// Expired here means the same thing it means to API calls: less than
	// the 5-minute safety margin remaining.
	if rec.Expired() {
		fmt.Printf("Status:   %s\n", text.FgYellow.Sprint("Token expired"))
		if rec.RefreshToken == "" {
			fmt.Println("          Run: vicare auth login")
		}
	} else {
		fmt.Printf("Status:   %s\n", text.FgGreen.Sprint("Authenticated"))
	}
	fmt.Printf("Expires:  %s\n", formatExpiryWithDirection(rec.ExpiresAt()))
	if rec.RefreshToken != "" {
		fmt.Printf("Refresh:  %s\n", text.FgGreen.Sprint("Available"))
	} else {
		fmt.Printf("Refresh:  %s\n", text.FgYellow.Sprint("Not available (re-auth required on expiry)"))
	}
	fmt.Printf("File:     %s\n", cfg.TokenFile)

	return nil
}
