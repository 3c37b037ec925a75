package cmd

import (
	"fmt"

	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/neo-th/iot-cache/internal/utils"
	"github.com/neo-th/iot-cache/internal/workflows"
	"github.com/spf13/cobra"
)

var createKeyCmd = &cobra.Command{
	Use:   "create-key <key> [value] <store>",
	Short: "Encrypts a value and stores it under a key",
	Long: `Encrypts a value with this device's key and stores it under key,
replacing any existing value.

When value is omitted it is read from stdin: piped input is used as is
(one trailing newline dropped), a terminal prompts without echo.

Examples:
  iot-cache create-key api-token s3cr3t creds.json
  iot-cache create-key api-token creds.json
  cat token.txt | iot-cache create-key api-token creds.json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create-key command")

		key, path := args[0], args[len(args)-1]
		var value []byte
		if len(args) == 3 {
			value = []byte(args[1])
		} else {
			v, err := readValue(key)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read value: %v", err)
			}
			value = v
		}

		spinner, cleanup := startSpinner("Encrypting value...")
		defer cleanup()

		result, err := workflows.CreateKey(cmd.Context(), workflows.CreateKeyOptions{
			Path:  path,
			Key:   key,
			Value: value,
		})
		if err != nil {
			return fail(spinner, err)
		}

		verb := "stored"
		if result.Replaced {
			verb = "updated"
		}
		spinner.FinalMSG = ui.Done("Key " + ui.Key.Sprint(result.Key) + " " + verb + " in " + ui.Path.Sprint(result.Path))
		return nil
	},
}

// readValue prompts on a terminal and reads piped stdin otherwise.
func readValue(key string) ([]byte, error) {
	if utils.IsTerminal() {
		Logger.Debugf("Prompting for value of %s", key)
		return utils.ReadSecret(fmt.Sprintf("Value for %s: ", key))
	}
	Logger.Debugf("Reading value of %s from stdin", key)
	return utils.ReadStdin()
}

var viewKeyCmd = &cobra.Command{
	Use:   "view-key <key> <store>",
	Short: "Decrypts and prints the value stored under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting view-key command")
		spinner, cleanup := startSpinner("Decrypting value...")
		defer cleanup()

		result, err := workflows.ViewKey(cmd.Context(), workflows.ViewKeyOptions{Path: args[1], Key: args[0]})
		if err != nil {
			return fail(spinner, err)
		}

		Logger.Infof("Decrypted %s (written on %q)", result.Key, result.Host)
		spinner.FinalMSG = string(result.Value)
		return nil
	},
}

var deleteKeyCmd = &cobra.Command{
	Use:   "delete-key <key> <store>",
	Short: "Removes a key from a store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete-key command")
		spinner, cleanup := startSpinner("Deleting key...")
		defer cleanup()

		result, err := workflows.DeleteKey(cmd.Context(), workflows.DeleteKeyOptions{Path: args[1], Key: args[0]})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Done("Key " + ui.Key.Sprint(result.Key) + " deleted from " + ui.Path.Sprint(result.Path))
		return nil
	},
}

var listKeysCmd = &cobra.Command{
	Use:   "list-keys <store>",
	Short: "Lists the keys in a store without decrypting them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list-keys command")

		result, err := workflows.ListKeys(cmd.Context(), workflows.ListKeysOptions{Path: args[0]})
		if err != nil {
			fmt.Println(describeError(err))
			return &reportedError{err: err}
		}

		if len(result.Entries) == 0 {
			fmt.Println(ui.Warning.Sprint("⚠") + " No keys in " + ui.Path.Sprint(args[0]))
			return nil
		}

		for _, e := range result.Entries {
			host := e.Host
			if host == "" {
				host = "unknown host"
			}
			fmt.Printf("  %-24s %s\n", e.Key, ui.Muted.Sprint(host))
		}
		return nil
	},
}
