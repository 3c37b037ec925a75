package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
)

func TestCreateStoreCommand(t *testing.T) {
	tempDir := setupTestEnvironment(t, "SERIAL-A")

	output, err := runCLI(t, "create-store", "creds.json")
	if err != nil {
		t.Fatalf("create-store failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "created") {
		t.Errorf("Expected success message, got: %s", output)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "creds.json"))
	if err != nil {
		t.Fatalf("Store file was not created: %v", err)
	}
	if !strings.Contains(string(data), `"__tag__": "--key-store--"`) {
		t.Errorf("Expected tagged document, got: %s", data)
	}
}

func TestCreateStoreCommandAlreadyExists(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")

	if output, err := runCLI(t, "create-store", "creds.json"); err != nil {
		t.Fatalf("create-store failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "create-store", "creds.json")
	if !errors.Is(err, kerrors.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("Expected failure mark in output, got: %s", output)
	}
}

func TestDeleteStoreCommand(t *testing.T) {
	tempDir := setupTestEnvironment(t, "SERIAL-A")

	if output, err := runCLI(t, "create-store", "creds.json"); err != nil {
		t.Fatalf("create-store failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "delete-store", "creds.json")
	if err != nil {
		t.Fatalf("delete-store failed: %v\nOutput: %s", err, output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "creds.json")); !os.IsNotExist(err) {
		t.Error("Expected store file to be removed")
	}
}

func TestDeleteStoreCommandRefusesPlainJSON(t *testing.T) {
	tempDir := setupTestEnvironment(t, "SERIAL-A")
	path := filepath.Join(tempDir, "package.json")
	if err := os.WriteFile(path, []byte(`{"name": "app"}`), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	output, err := runCLI(t, "delete-store", "package.json")
	if !errors.Is(err, kerrors.ErrInvalidStore) {
		t.Errorf("Expected ErrInvalidStore, got %v", err)
	}
	if errors.Is(err, kerrors.ErrStoreNotFound) {
		t.Error("An existing file must not be reported as missing")
	}
	if !strings.Contains(output, "not a key store") {
		t.Errorf("Expected invalid store hint, got: %s", output)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("Plain JSON file must not be removed")
	}
}

func TestDeleteStoreCommandMissing(t *testing.T) {
	setupTestEnvironment(t, "SERIAL-A")

	output, err := runCLI(t, "delete-store", "missing.json")
	if !errors.Is(err, kerrors.ErrStoreNotFound) {
		t.Errorf("Expected ErrStoreNotFound, got %v", err)
	}
	if !strings.Contains(output, "create-store") {
		t.Errorf("Expected create-store hint, got: %s", output)
	}
}

func TestStoreListCommand(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		contains []string
		excludes []string
	}{
		{
			name:     "no json files",
			files:    map[string]string{"notes.txt": "hello"},
			contains: []string{"No JSON files found"},
		},
		{
			name:     "no valid stores",
			files:    map[string]string{"a.json": `{"x": 1}`, "b.json": `{`},
			contains: []string{"No valid key store files found"},
		},
		{
			name: "filters and sorts",
			files: map[string]string{
				"zeta.json":   `{"__tag__": "--key-store--", "data": {}}`,
				"alpha.json":  `{"__tag__": "--key-store--"}`,
				"other.json":  `{"__tag__": "something-else"}`,
				"broken.json": `{"__tag__": `,
			},
			contains: []string{"alpha.json", "zeta.json"},
			excludes: []string{"other.json", "broken.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := setupTestEnvironment(t, "SERIAL-A")
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(tempDir, name), []byte(content), 0600); err != nil {
					t.Fatalf("Failed to write %s: %v", name, err)
				}
			}

			output, err := runCLI(t, "store-list")
			if err != nil {
				t.Fatalf("store-list failed: %v\nOutput: %s", err, output)
			}

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got: %s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("Expected output not to contain %q, got: %s", unwanted, output)
				}
			}
			if len(tt.excludes) > 0 && strings.Index(output, "alpha.json") > strings.Index(output, "zeta.json") {
				t.Errorf("Expected sorted output, got: %s", output)
			}
		})
	}
}

func TestStoreListCommandDirFlag(t *testing.T) {
	tempDir := setupTestEnvironment(t, "SERIAL-A")
	sub := filepath.Join(tempDir, "stores")
	if err := os.MkdirAll(sub, 0700); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if output, err := runCLI(t, "create-store", filepath.Join(sub, "s.json")); err != nil {
		t.Fatalf("create-store failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "store-list", "--dir", sub)
	if err != nil {
		t.Fatalf("store-list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "s.json") {
		t.Errorf("Expected s.json to be listed, got: %s", output)
	}
}
