package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file, creating parent directories.
// The file may hold a redis password so it is owner-only.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Keys absent from the file keep
// whatever value data already holds.
func LoadTOML(filePath string, data any) (toml.MetaData, error) {
	return toml.DecodeFile(filePath, data)
}
