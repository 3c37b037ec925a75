package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// captureStreams redirects stdout and stderr while fn runs.
func captureStreams(t *testing.T, fn func()) (string, string) {
	t.Helper()

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}
	os.Stdout, os.Stderr = outW, errW

	fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origOut, origErr

	var outBuf, errBuf bytes.Buffer
	_, _ = io.Copy(&outBuf, outR)
	_, _ = io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String()
}

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name       string
		logger     Logger
		wantInfo   bool
		wantDebug  bool
		wantWarn   bool
		wantErrorf bool
	}{
		{"Quiet", Logger{}, false, false, false, false},
		{"Verbose", Logger{Verbose: true}, true, false, true, false},
		{"Debug", Logger{Debug: true}, true, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr := captureStreams(t, func() {
				tc.logger.Infof("info %d", 1)
				tc.logger.Debugf("debug %d", 2)
				tc.logger.Warnf("warn %d", 3)
				tc.logger.Errorf("error %d", 4)
			})

			if got := strings.Contains(stdout, "[info] info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %v, expected %v (stdout: %q)", got, tc.wantInfo, stdout)
			}
			if got := strings.Contains(stdout, "[debug] debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %v, expected %v (stdout: %q)", got, tc.wantDebug, stdout)
			}
			if got := strings.Contains(stderr, "[warn] warn 3"); got != tc.wantWarn {
				t.Errorf("warn shown = %v, expected %v (stderr: %q)", got, tc.wantWarn, stderr)
			}
			if got := strings.Contains(stderr, "[error] error 4"); got != tc.wantErrorf {
				t.Errorf("error shown = %v, expected %v (stderr: %q)", got, tc.wantErrorf, stderr)
			}
		})
	}
}

func TestWarnfUserAlwaysShown(t *testing.T) {
	color.NoColor = true

	_, stderr := captureStreams(t, func() {
		Logger{}.WarnfUser("store %s is world readable", "s.json")
	})
	if !strings.Contains(stderr, "Warning: store s.json is world readable") {
		t.Errorf("Expected user warning on stderr, got: %q", stderr)
	}
}

func TestErrorfAndReturn(t *testing.T) {
	var err error
	captureStreams(t, func() {
		err = Logger{}.ErrorfAndReturn("failed to open %s: %v", "s.json", "boom")
	})
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	if err.Error() != "failed to open s.json: boom" {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
}
