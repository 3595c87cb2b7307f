package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archfit/archfit/internal/telemetry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local archfit preferences",
}

var configTelemetryCmd = &cobra.Command{
	Use:   "telemetry [enable|disable|status]",
	Short: "Enable, disable, or report telemetry consent",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigTelemetry,
}

func init() {
	configCmd.AddCommand(configTelemetryCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigTelemetry(cmd *cobra.Command, args []string) error {
	cfg, err := telemetry.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "enable":
		cfg.Enable()
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "telemetry enabled")
	case "disable":
		cfg.Disable()
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "telemetry disabled")
	case "status":
		fmt.Fprintf(cmd.OutOrStdout(), "enabled: %t\n", cfg.IsEnabled())
	default:
		return fmt.Errorf("unknown telemetry subcommand %q (want enable, disable, or status)", args[0])
	}
	return nil
}
