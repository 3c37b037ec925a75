package configs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type deviceRecord struct {
	Name   string `toml:"name"`
	Serial string `toml:"serial"`
	Slot   int    `toml:"slot"`
}

func TestSaveAndLoadTOML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "device.toml")

	original := deviceRecord{Name: "gateway-01", Serial: "PF3X9K2L", Slot: 4}

	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded deviceRecord
	if _, err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded != original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestLoadTOMLKeepsUnsetFields(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(testFile, []byte("name = \"sensor\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	loaded := deviceRecord{Serial: "kept", Slot: 7}
	if _, err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded.Name != "sensor" {
		t.Errorf("Expected Name %q, got %q", "sensor", loaded.Name)
	}
	if loaded.Serial != "kept" || loaded.Slot != 7 {
		t.Errorf("Expected unset fields to be kept, got %+v", loaded)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data deviceRecord
	if _, err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "dir", "device.toml")

	if err := SaveTOML(testFile, deviceRecord{Name: "test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("File was not created: %v", err)
	}

	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("Expected permissions 0600, got %o", perm)
		}
	}
}
