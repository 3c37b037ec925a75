package workflows

import (
	"context"
	"fmt"

	"github.com/neo-th/iot-cache/internal/audit"
	"github.com/neo-th/iot-cache/internal/configs"
	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/neo-th/iot-cache/internal/export"
	"github.com/neo-th/iot-cache/internal/store"
)

// RedisSyncOptions configures the redis-sync workflow.
type RedisSyncOptions struct {
	Path string

	// Redis is the fully resolved connection (flags over config).
	Redis export.RedisOptions

	// Overwrite replaces keys that already exist in redis.
	Overwrite bool
}

// RedisSyncResult contains the outcome of a redis-sync operation.
type RedisSyncResult struct {
	Path   string
	Addr   string
	Report *export.Report
}

// RedisSync pushes every record of a store, still encrypted, to redis.
//
// Keys are exported independently. When some fail the result is still
// returned alongside an error wrapping ErrSinkWriteFailure that names
// each failed key. An unreachable server fails before any key is pushed.
func RedisSync(ctx context.Context, opts RedisSyncOptions) (*RedisSyncResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpRedisSync)
	entry.Store = opts.Path
	entry.Target = opts.Redis.Addr()

	result, err := redisSync(ctx, opts)
	if result != nil && result.Report != nil {
		entry.Written = len(result.Report.Written())
		entry.Skipped = len(result.Report.Skipped())
		entry.Failed = len(result.Report.Failed())
	}
	record(config, entry, err)

	return result, err
}

func redisSync(ctx context.Context, opts RedisSyncOptions) (*RedisSyncResult, error) {
	snapshot, err := store.Snapshot(opts.Path)
	if err != nil {
		return nil, err
	}

	sink := export.NewRedisSink(opts.Redis)
	defer sink.Close()

	if err := sink.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrSinkWriteFailure, err)
	}

	result := &RedisSyncResult{
		Path:   opts.Path,
		Addr:   opts.Redis.Addr(),
		Report: export.Export(ctx, sink, snapshot, opts.Overwrite),
	}
	return result, result.Report.Err()
}

// RedisDefaults returns redis connection settings from the config file,
// for the CLI to apply its flags on top of.
func RedisDefaults() (export.RedisOptions, error) {
	config, err := loadConfig()
	if err != nil {
		return export.RedisOptions{}, err
	}
	return redisOptionsFrom(config.Redis)
}

func redisOptionsFrom(r configs.RedisConfig) (export.RedisOptions, error) {
	timeout, err := r.TimeoutDuration()
	if err != nil {
		return export.RedisOptions{}, err
	}
	return export.RedisOptions{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		SSL:      r.SSL,
		Timeout:  timeout,
	}, nil
}
