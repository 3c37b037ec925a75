package cmd

import (
	"fmt"

	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/neo-th/iot-cache/internal/workflows"
	"github.com/spf13/cobra"
)

var createStoreCmd = &cobra.Command{
	Use:   "create-store <store>",
	Short: "Creates an empty key store file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create-store command")
		spinner, cleanup := startSpinner("Creating key store...")
		defer cleanup()

		result, err := workflows.CreateStore(cmd.Context(), workflows.CreateStoreOptions{Path: args[0]})
		if err != nil {
			return fail(spinner, err)
		}

		Logger.Infof("Created store %s", result.Path)
		spinner.FinalMSG = ui.Done("Key store " + ui.Path.Sprint(result.Path) + " created")
		return nil
	},
}

var deleteStoreCmd = &cobra.Command{
	Use:   "delete-store <store>",
	Short: "Deletes a key store file",
	Long: `Deletes a key store file. Files that are not valid key stores are
never removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete-store command")
		spinner, cleanup := startSpinner("Deleting key store...")
		defer cleanup()

		result, err := workflows.DeleteStore(cmd.Context(), workflows.DeleteStoreOptions{Path: args[0]})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Done("Key store " + ui.Path.Sprint(result.Path) + " deleted")
		return nil
	},
}

var (
	storeListDir     string
	storeListPattern string
)

func init() {
	storeListCmd.Flags().StringVar(&storeListDir, "dir", ".", "directory to scan")
	storeListCmd.Flags().StringVar(&storeListPattern, "pattern", "", "glob relative to --dir (default \"*.json\", supports **)")
}

var storeListCmd = &cobra.Command{
	Use:   "store-list",
	Short: "Lists the valid key stores in a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting store-list command")
		Logger.Debugf("Flags: dir=%s, pattern=%s", storeListDir, storeListPattern)

		result, err := workflows.ListStores(cmd.Context(), workflows.ListStoresOptions{
			Dir:     storeListDir,
			Pattern: storeListPattern,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list stores: %v", err)
		}

		Logger.Infof("%d candidate files, %d valid stores", result.Candidates, len(result.Stores))
		switch {
		case result.Candidates == 0:
			fmt.Println(ui.Warning.Sprint("⚠") + " No JSON files found in " + ui.Path.Sprint(storeListDir))
		case len(result.Stores) == 0:
			fmt.Println(ui.Warning.Sprint("⚠") + " No valid key store files found in " + ui.Path.Sprint(storeListDir))
		default:
			fmt.Println("Valid key store files:")
			for _, s := range result.Stores {
				fmt.Println("  " + s)
			}
		}
		return nil
	},
}
