package cmd

import (
	"fmt"

	"github.com/neo-th/iot-cache/internal/audit"
	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/neo-th/iot-cache/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit int
	logStore string
	logOps   string
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the last N entries")
	logCmd.Flags().StringVar(&logStore, "store", "", "only entries for this store file")
	logCmd.Flags().StringVar(&logOps, "op", "", "only these operations (comma-separated, e.g. view-key,redis-sync)")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Shows the audit trail of store operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")
		Logger.Debugf("Flags: limit=%d, store=%s, op=%s", logLimit, logStore, logOps)

		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Limit:      logLimit,
			Store:      logStore,
			Operations: logOps,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read audit log: %v", err)
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Println(ui.Warning.Sprint("⚠") + " No audit entries in " + ui.Path.Sprint(result.Path))
			} else {
				fmt.Println(ui.Warning.Sprint("⚠") + " No audit entries match the filters")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Println(formatLogLine(e))
		}
		return nil
	},
}

func formatLogLine(e audit.Entry) string {
	mark := ui.Success.Sprint("✓")
	if !e.OK {
		mark = ui.Error.Sprint("✗")
	}
	who := e.User
	if e.Host != "" {
		who += "@" + e.Host
	}
	return fmt.Sprintf("%s %s %-12s %s %s",
		ui.Muted.Sprint(workflows.FormatDateTime(e.Timestamp)), mark, e.Operation, who, workflows.FormatDetails(e))
}
