package configs

import (
	"log"
	"os"
	"path/filepath"
)

// AppName names the config and data subdirectories.
const AppName = "iot-cache"

type Settings struct {
	ConfigPath string
	DataPath   string
}

var UserSettings *Settings

func init() {
	settings, err := DefaultSettings()
	if err != nil {
		log.Fatalf("error resolving user directories: %s", err)
	}
	UserSettings = settings
}

// DefaultSettings resolves the per-user config file and data directory.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigPath: filepath.Join(configDir, AppName, "config.toml"),
		DataPath:   filepath.Join(dataDir, AppName),
	}, nil
}

// AuditLogPath is where the audit trail is appended.
func (s *Settings) AuditLogPath() string {
	return filepath.Join(s.DataPath, "audit.jsonl")
}
