package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neo-th/iot-cache/internal/export"
	"github.com/neo-th/iot-cache/internal/ui"
	"github.com/neo-th/iot-cache/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var redisSyncOverwrite bool

func init() {
	redisSyncCmd.Flags().AddFlagSet(redisFlagSet())
	redisSyncCmd.Flags().BoolVar(&redisSyncOverwrite, "overwrite", false, "replace keys that already exist in redis")
}

// redisFlagSet declares the connection flags. Defaults shown in help are the
// built-in ones; the config file applies when a flag is not given.
func redisFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("redis", pflag.ContinueOnError)
	flags.String("host", "localhost", "redis host")
	flags.Int("port", 6379, "redis port")
	flags.String("password", "", "redis password")
	flags.Bool("ssl", false, "connect with TLS")
	flags.Int("db", 0, "redis database number")
	flags.Duration("timeout", 0, "dial and read/write timeout (default from config, 5s)")
	return flags
}

// applyRedisFlags overrides opts with every flag the user set explicitly.
func applyRedisFlags(flags *pflag.FlagSet, opts *export.RedisOptions) error {
	var errs []error
	if flags.Changed("host") {
		v, err := flags.GetString("host")
		opts.Host, errs = v, append(errs, err)
	}
	if flags.Changed("port") {
		v, err := flags.GetInt("port")
		opts.Port, errs = v, append(errs, err)
	}
	if flags.Changed("password") {
		v, err := flags.GetString("password")
		opts.Password, errs = v, append(errs, err)
	}
	if flags.Changed("ssl") {
		v, err := flags.GetBool("ssl")
		opts.SSL, errs = v, append(errs, err)
	}
	if flags.Changed("db") {
		v, err := flags.GetInt("db")
		opts.DB, errs = v, append(errs, err)
	}
	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		opts.Timeout, errs = v, append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if opts.Port < 1 || opts.Port > 65535 {
		return fmt.Errorf("invalid port %d", opts.Port)
	}
	return nil
}

var redisSyncCmd = &cobra.Command{
	Use:   "redis-sync <store>...",
	Short: "Pushes a store's encrypted values to redis",
	Long: `Pushes every key of each store to redis, still encrypted. Values can only
be decrypted again on this device.

Keys that already exist in redis are left alone unless --overwrite is given.
Connection settings come from the [redis] section of the config file;
flags override them.

Examples:
  iot-cache redis-sync creds.json
  iot-cache redis-sync creds.json --host cache.local --port 6380 --ssl --overwrite`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting redis-sync command")

		opts, err := workflows.RedisDefaults()
		if err != nil {
			fmt.Println(describeError(err))
			return &reportedError{err: err}
		}
		if err := applyRedisFlags(cmd.Flags(), &opts); err != nil {
			return Logger.ErrorfAndReturn("Invalid redis flags: %v", err)
		}
		Logger.Debugf("Redis target %s (ssl=%t, db=%d, timeout=%s), overwrite=%t",
			opts.Addr(), opts.SSL, opts.DB, opts.Timeout, redisSyncOverwrite)

		var failed []error
		for _, path := range args {
			if err := syncStore(cmd, path, opts); err != nil {
				failed = append(failed, err)
			}
		}

		if len(failed) > 0 {
			return &reportedError{err: errors.Join(failed...)}
		}
		return nil
	},
}

func syncStore(cmd *cobra.Command, path string, opts export.RedisOptions) error {
	spinner, cleanup := startSpinner("Pushing " + path + " to redis...")
	defer cleanup()

	result, err := workflows.RedisSync(cmd.Context(), workflows.RedisSyncOptions{
		Path:      path,
		Redis:     opts,
		Overwrite: redisSyncOverwrite,
	})
	if result == nil {
		return fail(spinner, err)
	}

	report := result.Report
	Logger.Infof("%s: %d written, %d skipped, %d failed",
		path, len(report.Written()), len(report.Skipped()), len(report.Failed()))
	for _, r := range report.Skipped() {
		Logger.Debugf("Skipped existing key %s", r.Key)
	}

	summary := fmt.Sprintf("%d written, %d skipped", len(report.Written()), len(report.Skipped()))
	if err != nil {
		Logger.Errorf("%v", err)
		lines := []string{ui.Failed(ui.Path.Sprint(path) + " failed to push to " + result.Addr + " " + ui.Muted.Sprint(summary))}
		for _, r := range report.Failed() {
			lines = append(lines, "  "+ui.Key.Sprint(r.Key)+": "+r.Err.Error())
		}
		spinner.FinalMSG = strings.Join(lines, "\n")
		return err
	}

	spinner.FinalMSG = ui.Done(ui.Path.Sprint(path) + " pushed successfully to " + result.Addr + " " + ui.Muted.Sprint(summary))
	return nil
}
