package export

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the connection used by RedisSink.
type RedisOptions struct {
	Host     string
	Port     int
	Password string
	DB       int

	// SSL enables TLS to the server.
	SSL bool

	// Timeout bounds dialing and each read/write. Zero uses the client default.
	Timeout time.Duration
}

// Addr returns host:port.
func (o RedisOptions) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// RedisSink writes exported values as plain string keys.
type RedisSink struct {
	client *redis.Client
}

// NewRedisSink creates a sink. No connection is made until first use.
func NewRedisSink(opts RedisOptions) *RedisSink {
	ro := &redis.Options{
		Addr:     opts.Addr(),
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.Timeout > 0 {
		ro.DialTimeout = opts.Timeout
		ro.ReadTimeout = opts.Timeout
		ro.WriteTimeout = opts.Timeout
	}
	if opts.SSL {
		ro.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: opts.Host,
		}
	}
	return &RedisSink{client: redis.NewClient(ro)}
}

// Ping checks the server is reachable and the credentials are accepted.
func (s *RedisSink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connecting to redis at %s: %w", s.client.Options().Addr, err)
	}
	return nil
}

// Push stores value under key. Without overwrite it uses SETNX so an
// existing key is never replaced.
func (s *RedisSink) Push(ctx context.Context, key, value string, overwrite bool) (Outcome, error) {
	if overwrite {
		if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
			return Failed, err
		}
		return Written, nil
	}

	set, err := s.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return Failed, err
	}
	if !set {
		return Skipped, nil
	}
	return Written, nil
}

// Close releases the client's connections.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
