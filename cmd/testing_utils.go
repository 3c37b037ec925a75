// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for isolating the user's config and
// data directories, fixing the hardware serial, and capturing output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/neo-th/iot-cache/internal/configs"
	logger "github.com/neo-th/iot-cache/internal/logging"
	"github.com/neo-th/iot-cache/internal/serial"
	"github.com/neo-th/iot-cache/internal/workflows"
)

// setupTestEnvironment changes into a fresh temp directory, points config
// and data paths into it, and fixes the serial to serialValue.
// Returns the temp directory.
func setupTestEnvironment(t *testing.T, serialValue string) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalSettings := configs.UserSettings

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	configs.UserSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, ".user", "config", "config.toml"),
		DataPath:   filepath.Join(tempDir, ".user", "data"),
	}
	restoreResolver := workflows.SetResolver(serial.Static(serialValue))
	ResetGlobalState()
	Logger = logger.Logger{}

	t.Cleanup(func() {
		restoreResolver()
		configs.UserSettings = originalSettings
		ResetGlobalState()
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI executes the real root command with args, capturing its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return RootCmd.Execute()
	})
}

// runCLIWithStdin runs the CLI with stdin replaced by a pipe holding input.
func runCLIWithStdin(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := writer.WriteString(input); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	writer.Close()

	originalStdin := os.Stdin
	os.Stdin = reader
	defer func() {
		os.Stdin = originalStdin
		reader.Close()
	}()

	return runCLI(t, args...)
}
