package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

// Config is the optional user configuration file.
type Config struct {
	Serial SerialConfig `toml:"serial"`
	Redis  RedisConfig  `toml:"redis"`
	Audit  AuditConfig  `toml:"audit"`
}

type SerialConfig struct {
	// Source names the hardware identifier. Empty selects the platform default.
	Source string `toml:"source"`
}

type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	SSL      bool   `toml:"ssl"`
	DB       int    `toml:"db"`
	Timeout  string `toml:"timeout"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

const (
	DefaultRedisHost    = "localhost"
	DefaultRedisPort    = 6379
	DefaultRedisTimeout = "5s"

	maskedPassword = "********"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Host:    DefaultRedisHost,
			Port:    DefaultRedisPort,
			Timeout: DefaultRedisTimeout,
		},
		Audit: AuditConfig{Enabled: true},
	}
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	meta, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kerrors.ErrInvalidConfig, path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: %s: unknown keys %s", kerrors.ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// LoadUserConfig loads the config from UserSettings.ConfigPath.
func LoadUserConfig() (*Config, error) {
	return Load(UserSettings.ConfigPath)
}

// Save writes config to path.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks value ranges that TOML typing cannot express.
func (c *Config) Validate() error {
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("%w: redis port %d out of range", kerrors.ErrInvalidConfig, c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db %d is negative", kerrors.ErrInvalidConfig, c.Redis.DB)
	}
	if _, err := c.Redis.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means no explicit timeout.
func (r RedisConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: redis timeout %q", kerrors.ErrInvalidConfig, r.Timeout)
	}
	return d, nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Redis.Password != "" {
		out.Redis.Password = maskedPassword
	}
	return &out
}
