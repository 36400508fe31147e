package cmd

import (
	"os"

	"vicare/internal/cli"
	"vicare/pkg/vicare"

	"github.com/spf13/cobra"
)

var (
	featuresInstallation int
	featuresGateway      string
	featuresDevice       string
)

// featuresCmd lists or inspects device features.
var featuresCmd = &cobra.Command{
	Use:   "features [name]",
	Short: "List or inspect device features",
	Long: `List the data points a device exposes, or inspect one by name.

Without an argument all features are listed with their primary value. With
a feature name the full property set and the accepted commands are shown.

Examples:
  vicare features -i 1001 -g 7633107093013212 -d 0
  vicare features -i 1001 -g 7633107093013212 -d 0 heating.boiler.temperature`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	featuresCmd.Flags().IntVarP(&featuresInstallation, "installation", "i", 0, "Installation id")
	featuresCmd.Flags().StringVarP(&featuresGateway, "gateway", "g", "", "Gateway serial")
	featuresCmd.Flags().StringVarP(&featuresDevice, "device", "d", "0", "Device id")
	_ = featuresCmd.MarkFlagRequired("installation")
	_ = featuresCmd.MarkFlagRequired("gateway")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	_, client, err := apiSetup()
	if err != nil {
		return err
	}

	renderer := cli.NewRenderer(os.Stdout)

	if len(args) == 1 {
		var feature *vicare.Feature
		err = runWithSpinner("Fetching feature...", func() error {
			var ferr error
			feature, ferr = client.Feature(cmd.Context(),
				featuresInstallation, featuresGateway, featuresDevice, args[0])
			return ferr
		})
		if err != nil {
			return classifyAuthError(err)
		}
		renderer.Feature(feature)
		return nil
	}

	var features []vicare.Feature
	err = runWithSpinner("Fetching features...", func() error {
		var ferr error
		features, ferr = client.Features(cmd.Context(),
			featuresInstallation, featuresGateway, featuresDevice)
		return ferr
	})
	if err != nil {
		return classifyAuthError(err)
	}

	renderer.Features(features)
	return nil
}
