package cmd

import (
	"os"

	"vicare/internal/cli"
	"vicare/internal/config"
	"vicare/pkg/logging"

	"github.com/spf13/cobra"
)

// Global flags shared by all commands.
var (
	configPath string
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command for the vicare application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vicare",
	Short: "Query and control Viessmann heating systems",
	Long: `vicare is a client for the Viessmann ViCare IoT API. It lists your
installations, gateways and devices, reads device features like boiler
temperature, and executes feature commands.

Authentication runs through the OAuth2 authorization-code flow with PKCE:
on first use a browser window opens, and the resulting token is stored
locally and refreshed transparently.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if verbose {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags, and maps errors to semantic exit codes.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "vicare version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
