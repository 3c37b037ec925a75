package configs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Redis.Host != DefaultRedisHost {
		t.Errorf("Expected host %q, got %q", DefaultRedisHost, config.Redis.Host)
	}
	if config.Redis.Port != DefaultRedisPort {
		t.Errorf("Expected port %d, got %d", DefaultRedisPort, config.Redis.Port)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to be enabled by default")
	}
	if config.Serial.Source != "" {
		t.Errorf("Expected default serial source, got %q", config.Serial.Source)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[redis]\nhost = \"cache.local\"\n")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Redis.Host != "cache.local" {
		t.Errorf("Expected host %q, got %q", "cache.local", config.Redis.Host)
	}
	if config.Redis.Port != DefaultRedisPort {
		t.Errorf("Expected default port, got %d", config.Redis.Port)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to stay enabled when the section is absent")
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
[serial]
source = "machine-id"

[redis]
host = "10.0.0.5"
port = 6380
password = "hunter2"
ssl = true
db = 3
timeout = "750ms"

[audit]
enabled = false
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Serial.Source != "machine-id" {
		t.Errorf("Expected serial source machine-id, got %q", config.Serial.Source)
	}
	if !config.Redis.SSL || config.Redis.DB != 3 || config.Redis.Port != 6380 {
		t.Errorf("Unexpected redis config: %+v", config.Redis)
	}
	if config.Audit.Enabled {
		t.Error("Expected audit to be disabled")
	}

	timeout, err := config.Redis.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration failed: %v", err)
	}
	if timeout != 750*time.Millisecond {
		t.Errorf("Expected 750ms, got %s", timeout)
	}
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[redis\nhost = "},
		{"wrong type", "[redis]\nport = \"six\"\n"},
		{"port out of range", "[redis]\nport = 70000\n"},
		{"negative db", "[redis]\ndb = -1\n"},
		{"bad timeout", "[redis]\ntimeout = \"soon\"\n"},
		{"unknown key", "[redis]\nhostname = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iot-cache", "config.toml")

	config := Default()
	config.Serial.Source = "dmi-uuid"
	config.Redis.Password = "secret"

	if err := Save(path, config); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestRedacted(t *testing.T) {
	config := Default()
	config.Redis.Password = "secret"

	redacted := config.Redacted()
	if redacted.Redis.Password == "secret" {
		t.Error("Expected password to be masked")
	}
	if config.Redis.Password != "secret" {
		t.Error("Redacted must not modify the original")
	}

	if Default().Redacted().Redis.Password != "" {
		t.Error("Expected empty password to stay empty")
	}
}

func TestLoadUserConfigUsesSettings(t *testing.T) {
	oldSettings := UserSettings
	dir := t.TempDir()
	UserSettings = &Settings{
		ConfigPath: filepath.Join(dir, "config.toml"),
		DataPath:   dir,
	}
	defer func() { UserSettings = oldSettings }()

	if err := os.WriteFile(UserSettings.ConfigPath, []byte("[serial]\nsource = \"machine-id\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Serial.Source != "machine-id" {
		t.Errorf("Expected machine-id, got %q", config.Serial.Source)
	}
}

func TestDefaultSettings(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	settings, err := DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings failed: %v", err)
	}

	if settings.DataPath != filepath.Join(dataHome, AppName) {
		t.Errorf("Expected data path under XDG_DATA_HOME, got %q", settings.DataPath)
	}
	if !strings.HasSuffix(settings.ConfigPath, filepath.Join(AppName, "config.toml")) {
		t.Errorf("Unexpected config path %q", settings.ConfigPath)
	}
	if filepath.Base(settings.AuditLogPath()) != "audit.jsonl" {
		t.Errorf("Unexpected audit log path %q", settings.AuditLogPath())
	}
}
