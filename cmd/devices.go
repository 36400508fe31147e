package cmd

import (
	"os"

	"vicare/internal/cli"
	"vicare/pkg/vicare"

	"github.com/spf13/cobra"
)

var (
	devicesInstallation int
	devicesGateway      string
)

// devicesCmd lists the devices behind a gateway.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices behind a gateway",
	Long: `List the appliances behind one gateway of an installation.

Examples:
  vicare devices --installation 1001 --gateway 7633107093013212`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().IntVarP(&devicesInstallation, "installation", "i", 0, "Installation id")
	devicesCmd.Flags().StringVarP(&devicesGateway, "gateway", "g", "", "Gateway serial")
	_ = devicesCmd.MarkFlagRequired("installation")
	_ = devicesCmd.MarkFlagRequired("gateway")
}

func runDevices(cmd *cobra.Command, args []string) error {
	_, client, err := apiSetup()
	if err != nil {
		return err
	}

	var devices []vicare.Device
	err = runWithSpinner("Fetching devices...", func() error {
		var ferr error
		devices, ferr = client.Devices(cmd.Context(), devicesInstallation, devicesGateway)
		return ferr
	})
	if err != nil {
		return classifyAuthError(err)
	}

	cli.NewRenderer(os.Stdout).Devices(devices)
	return nil
}
