package cmd

import (
	"encoding/json"
	"fmt"

	"vicare/pkg/vicare"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	execInstallation int
	execGateway      string
	execDevice       string
	execParams       string
)

// execCmd executes a feature command on a device.
var execCmd = &cobra.Command{
	Use:   "exec <feature> <command>",
	Short: "Execute a feature command",
	Long: `Execute a command on a device feature.

Command parameters are passed as a JSON object via --params; the API
validates them against the command's declared constraints. Use
'vicare features <name>' to inspect a command's parameters first.

Examples:
  vicare exec -i 1001 -g 7633107093013212 -d 0 \
    heating.circuits.0.operating.programs.normal setTemperature \
    --params '{"targetTemperature": 21}'

  vicare exec -i 1001 -g 7633107093013212 -d 0 \
    heating.dhw.oneTimeCharge activate`,
	Args: cobra.ExactArgs(2),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().IntVarP(&execInstallation, "installation", "i", 0, "Installation id")
	execCmd.Flags().StringVarP(&execGateway, "gateway", "g", "", "Gateway serial")
	execCmd.Flags().StringVarP(&execDevice, "device", "d", "0", "Device id")
	execCmd.Flags().StringVarP(&execParams, "params", "p", "", "Command parameters as a JSON object")
	_ = execCmd.MarkFlagRequired("installation")
	_ = execCmd.MarkFlagRequired("gateway")
}

func runExec(cmd *cobra.Command, args []string) error {
	feature, command := args[0], args[1]

	var params map[string]any
	if execParams != "" {
		if err := json.Unmarshal([]byte(execParams), &params); err != nil {
			return fmt.Errorf("--params is not a valid JSON object: %w", err)
		}
	}

	_, client, err := apiSetup()
	if err != nil {
		return err
	}

	var result *vicare.CommandResult
	err = runWithSpinner("Executing command...", func() error {
		var ferr error
		result, ferr = client.ExecuteCommand(cmd.Context(),
			execInstallation, execGateway, execDevice, feature, command, params)
		return ferr
	})
	if err != nil {
		return classifyAuthError(err)
	}

	if result.Success {
		printQuiet("%s %s.%s\n", text.FgGreen.Sprint("Executed"), feature, command)
	} else {
		reason := result.Reason
		if reason == "" {
			reason = result.Message
		}
		return fmt.Errorf("command was not accepted: %s", reason)
	}
	return nil
}
