package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/neo-th/iot-cache/internal/serial"
	"github.com/neo-th/iot-cache/internal/workflows"
)

func createTestStore(t *testing.T, name string) {
	t.Helper()
	if output, err := runCLI(t, "create-store", name); err != nil {
		t.Fatalf("create-store failed: %v\nOutput: %s", err, output)
	}
}

func TestKeyLifecycleCommands(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")
	createTestStore(t, "s.json")

	output, err := runCLI(t, "create-key", "k", "secret", "s.json")
	if err != nil {
		t.Fatalf("create-key failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "stored") {
		t.Errorf("Expected stored message, got: %s", output)
	}

	output, err = runCLI(t, "view-key", "k", "s.json")
	if err != nil {
		t.Fatalf("view-key failed: %v\nOutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "secret" {
		t.Errorf("Expected only the value, got: %q", output)
	}

	output, err = runCLI(t, "create-key", "k", "changed", "s.json")
	if err != nil {
		t.Fatalf("create-key failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "updated") {
		t.Errorf("Expected updated message, got: %s", output)
	}

	output, err = runCLI(t, "delete-key", "k", "s.json")
	if err != nil {
		t.Fatalf("delete-key failed: %v\nOutput: %s", err, output)
	}

	output, err = runCLI(t, "view-key", "k", "s.json")
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
	if !strings.Contains(output, "list-keys") {
		t.Errorf("Expected list-keys hint, got: %s", output)
	}
}

func TestCreateKeyFromStdin(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")
	createTestStore(t, "s.json")

	output, err := runCLIWithStdin(t, "line one\nline two\n", "create-key", "multi", "s.json")
	if err != nil {
		t.Fatalf("create-key failed: %v\nOutput: %s", err, output)
	}

	output, err = runCLI(t, "view-key", "multi", "s.json")
	if err != nil {
		t.Fatalf("view-key failed: %v\nOutput: %s", err, output)
	}
	if output != "line one\nline two\n" {
		t.Errorf("Expected multi-line value, got: %q", output)
	}
}

func TestCreateKeyCommandErrors(t *testing.T) {
	tempDir := setupTestEnvironment(t, "SERIAL-A")
	if err := os.WriteFile(filepath.Join(tempDir, "plain.json"), []byte(`{"data": {}}`), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"missing store", []string{"create-key", "k", "v", "missing.json"}, kerrors.ErrStoreNotFound},
		{"untagged store", []string{"create-key", "k", "v", "plain.json"}, kerrors.ErrInvalidStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v\nOutput: %s", tt.expected, err, output)
			}
		})
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "plain.json"))
	if err != nil || string(data) != `{"data": {}}` {
		t.Errorf("Untagged file must not be modified, got %q", data)
	}
}

func TestCreateKeyCommandWrongArgs(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")

	if _, err := runCLI(t, "create-key", "only-key"); err == nil {
		t.Error("Expected error for missing store argument")
	}
	if _, err := runCLI(t, "create-key", "a", "b", "c", "d"); err == nil {
		t.Error("Expected error for too many arguments")
	}
}

func TestViewKeyCommandOtherDevice(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")
	createTestStore(t, "s.json")

	if output, err := runCLI(t, "create-key", "k", "secret", "s.json"); err != nil {
		t.Fatalf("create-key failed: %v\nOutput: %s", err, output)
	}

	restore := workflows.SetResolver(serial.Static("SERIAL-B"))
	defer restore()

	output, err := runCLI(t, "view-key", "k", "s.json")
	if !errors.Is(err, kerrors.ErrAuthenticationFailure) {
		t.Errorf("Expected ErrAuthenticationFailure, got %v", err)
	}
	if strings.Contains(output, "secret") {
		t.Errorf("Plaintext must not be printed, got: %s", output)
	}
	if !strings.Contains(output, "another device") {
		t.Errorf("Expected device hint, got: %s", output)
	}
}

func TestListKeysCommand(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")
	createTestStore(t, "s.json")

	output, err := runCLI(t, "list-keys", "s.json")
	if err != nil {
		t.Fatalf("list-keys failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No keys") {
		t.Errorf("Expected empty store message, got: %s", output)
	}

	for _, k := range []string{"beta", "alpha"} {
		if output, err := runCLI(t, "create-key", k, "value-"+k, "s.json"); err != nil {
			t.Fatalf("create-key failed: %v\nOutput: %s", err, output)
		}
	}

	output, err = runCLI(t, "list-keys", "s.json")
	if err != nil {
		t.Fatalf("list-keys failed: %v\nOutput: %s", err, output)
	}
	if strings.Index(output, "alpha") > strings.Index(output, "beta") {
		t.Errorf("Expected sorted keys, got: %s", output)
	}
	if strings.Contains(output, "value-") {
		t.Errorf("Values must not be listed, got: %s", output)
	}
}
