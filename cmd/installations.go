package cmd

import (
	"os"

	"vicare/internal/cli"
	"vicare/pkg/vicare"

	"github.com/spf13/cobra"
)

var installationsWithGateways bool

// installationsCmd lists the account's installations.
var installationsCmd = &cobra.Command{
	Use:   "installations",
	Short: "List your installations",
	Long: `List the heating installations registered to your account.

Examples:
  vicare installations                 # List installations
  vicare installations --gateways      # Include gateway serials inline`,
	RunE: runInstallations,
}

func init() {
	rootCmd.AddCommand(installationsCmd)
	installationsCmd.Flags().BoolVar(&installationsWithGateways, "gateways", true, "Include gateways in the listing")
}

func runInstallations(cmd *cobra.Command, args []string) error {
	_, client, err := apiSetup()
	if err != nil {
		return err
	}

	var installations []vicare.Installation
	err = runWithSpinner("Fetching installations...", func() error {
		var ferr error
		installations, ferr = client.Installations(cmd.Context(), installationsWithGateways)
		return ferr
	})
	if err != nil {
		return classifyAuthError(err)
	}

	cli.NewRenderer(os.Stdout).Installations(installations)
	return nil
}
