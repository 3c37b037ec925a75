package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/neo-th/iot-cache/internal/configs"
	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/neo-th/iot-cache/internal/serial"
)

// ShowConfigResult contains the effective configuration.
type ShowConfigResult struct {
	// Path is the config file location.
	Path string

	// Exists is false when defaults are in effect.
	Exists bool

	// Config is the effective configuration with secrets masked.
	Config *configs.Config

	// SerialSource is the source that will be used, resolved from defaults.
	SerialSource string

	// AvailableSources lists the serial sources on this platform.
	AvailableSources []string

	// AuditLogPath is where the audit trail is written.
	AuditLogPath string
}

// ShowConfig loads and describes the effective configuration.
func ShowConfig(ctx context.Context) (*ShowConfigResult, error) {
	path := configs.UserSettings.ConfigPath

	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)

	result := &ShowConfigResult{
		Path:             path,
		Exists:           statErr == nil,
		Config:           config.Redacted(),
		AvailableSources: serial.SourceNames(),
		AuditLogPath:     configs.UserSettings.AuditLogPath(),
	}

	if source, err := serial.SourceByName(config.Serial.Source); err == nil {
		result.SerialSource = source.Name()
	}

	return result, nil
}

// InitConfigOptions configures the config init workflow.
type InitConfigOptions struct {
	// Force overwrites an existing config file.
	Force bool
}

// InitConfigResult contains the outcome of config init.
type InitConfigResult struct {
	Path        string
	Overwritten bool
}

// InitConfig writes a config file holding the defaults.
//
// Returns ErrAlreadyExists if a config file exists and Force is false.
func InitConfig(ctx context.Context, opts InitConfigOptions) (*InitConfigResult, error) {
	path := configs.UserSettings.ConfigPath

	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	if exists && !opts.Force {
		return nil, fmt.Errorf("%s: %w", path, kerrors.ErrAlreadyExists)
	}

	if err := configs.Save(path, configs.Default()); err != nil {
		return nil, err
	}

	return &InitConfigResult{Path: path, Overwritten: exists}, nil
}
