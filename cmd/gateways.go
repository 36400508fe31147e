package cmd

import (
	"os"

	"vicare/internal/cli"
	"vicare/pkg/vicare"

	"github.com/spf13/cobra"
)

var gatewaysInstallation int

// gatewaysCmd lists the gateways of one installation.
var gatewaysCmd = &cobra.Command{
	Use:   "gateways",
	Short: "List the gateways of an installation",
	Long: `List the communication gateways of one installation.

Examples:
  vicare gateways --installation 1001`,
	RunE: runGateways,
}

func init() {
	rootCmd.AddCommand(gatewaysCmd)
	gatewaysCmd.Flags().IntVarP(&gatewaysInstallation, "installation", "i", 0, "Installation id")
	_ = gatewaysCmd.MarkFlagRequired("installation")
}

func runGateways(cmd *cobra.Command, args []string) error {
	_, client, err := apiSetup()
	if err != nil {
		return err
	}

	var gateways []vicare.Gateway
	err = runWithSpinner("Fetching gateways...", func() error {
		var ferr error
		gateways, ferr = client.Gateways(cmd.Context(), gatewaysInstallation)
		return ferr
	})
	if err != nil {
		return classifyAuthError(err)
	}

	cli.NewRenderer(os.Stdout).Gateways(gateways)
	return nil
}
