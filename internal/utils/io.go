package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadStdin reads all content from stdin, dropping a single trailing newline.
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the value to this command)")
	}

	return readValue(os.Stdin)
}

func readValue(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	return data, nil
}
