package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	logger "github.com/neo-th/iot-cache/internal/logging"
	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "iot-cache",
		Short: "iot-cache - a device-bound secret vault",
		Long: `iot-cache keeps key/value secrets in local JSON store files, encrypted with a
key derived from this device's hardware serial. A store copied to another
device cannot be decrypted there.

Examples:
  # Create a store and put a secret in it
  iot-cache create-store creds.json
  iot-cache create-key api-token s3cr3t creds.json

  # Read it back
  iot-cache view-key api-token creds.json

  # Push the encrypted values to redis
  iot-cache redis-sync creds.json --host cache.local`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("iot-cache", "", true)
			fmt.Println(banner.String())
			fmt.Println(ui.Hint("Run " + ui.Code.Sprint("iot-cache --help") + " to see available commands"))
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(createStoreCmd)
	RootCmd.AddCommand(createKeyCmd)
	RootCmd.AddCommand(viewKeyCmd)
	RootCmd.AddCommand(deleteKeyCmd)
	RootCmd.AddCommand(deleteStoreCmd)
	RootCmd.AddCommand(storeListCmd)
	RootCmd.AddCommand(listKeysCmd)
	RootCmd.AddCommand(redisSyncCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
		}
		return 1
	}
	return 0
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so one test's flags
// do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
