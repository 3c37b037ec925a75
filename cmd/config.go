package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/neo-th/iot-cache/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configShowJSON  bool
	configInitForce bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

// ConfigCmd is the parent of the config subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the iot-cache config file",
	Long: `The config file is optional. It selects the hardware serial source and
holds redis connection defaults.

Examples:
  # Write a config file with the defaults
  iot-cache config init

  # Show the effective configuration
  iot-cache config show`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Displays the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		result, err := workflows.ShowConfig(cmd.Context())
		if err != nil {
			fmt.Println(describeError(err))
			return &reportedError{err: err}
		}

		if configShowJSON {
			output, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := result.SerialSource
		if source == "" {
			source = ui.Error.Sprint("none available")
		}
		configured := result.Config.Serial.Source
		if configured == "" {
			configured = "(platform default)"
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Path.Sprint(result.Path))
		if !result.Exists {
			fmt.Println(ui.Muted.Sprint("file not found, using defaults"))
		}
		fmt.Println()
		fmt.Printf("  %-16s %s\n", "Serial source:", configured)
		fmt.Printf("  %-16s %s\n", "In use:", source)
		fmt.Printf("  %-16s %v\n", "Available:", result.AvailableSources)
		fmt.Printf("  %-16s %s:%d\n", "Redis:", result.Config.Redis.Host, result.Config.Redis.Port)
		fmt.Printf("  %-16s %s\n", "Redis password:", result.Config.Redis.Password)
		fmt.Printf("  %-16s %t\n", "Redis SSL:", result.Config.Redis.SSL)
		fmt.Printf("  %-16s %d\n", "Redis DB:", result.Config.Redis.DB)
		fmt.Printf("  %-16s %s\n", "Redis timeout:", result.Config.Redis.Timeout)
		fmt.Printf("  %-16s %t\n", "Audit:", result.Config.Audit.Enabled)
		fmt.Printf("  %-16s %s\n", "Audit log:", result.AuditLogPath)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a config file holding the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		spinner, cleanup := startSpinner("Writing config file...")
		defer cleanup()

		result, err := workflows.InitConfig(cmd.Context(), workflows.InitConfigOptions{Force: configInitForce})
		if err != nil {
			return fail(spinner, err)
		}

		verb := "created"
		if result.Overwritten {
			verb = "overwritten"
		}
		spinner.FinalMSG = ui.Done("Config file " + ui.Path.Sprint(result.Path) + " " + verb)
		return nil
	},
}
