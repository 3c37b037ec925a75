package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/neo-th/iot-cache/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. The returned cleanup must be deferred; it stops
// the spinner and prints spinner.FinalMSG, adding a trailing newline.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout for tests to capture.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail sets a user-facing failure message on the spinner and returns err
// marked as reported, so the process exits non-zero without printing twice.
func fail(s *spinner.Spinner, err error) error {
	Logger.Errorf("%v", err)
	s.FinalMSG = describeError(err)
	return &reportedError{err: err}
}

// describeError turns a typed error into a failure line plus a hint.
func describeError(err error) string {
	msg := ui.Failed(err.Error())

	var hint string
	switch {
	case errors.Is(err, kerrors.ErrStoreNotFound):
		hint = "Run " + ui.Code.Sprint("iot-cache create-store <store>") + " first"
	case errors.Is(err, kerrors.ErrInvalidStore):
		hint = "The file is not a key store; " + ui.Code.Sprint("iot-cache store-list") + " shows valid stores"
	case errors.Is(err, kerrors.ErrAlreadyExists):
		hint = "Choose another name, or remove the file first"
	case errors.Is(err, kerrors.ErrKeyNotFound):
		hint = ui.Code.Sprint("iot-cache list-keys <store>") + " shows the keys in a store"
	case errors.Is(err, kerrors.ErrAuthenticationFailure):
		hint = "The value was written on another device, or the store was modified"
	case errors.Is(err, kerrors.ErrMalformedBlob):
		hint = "The stored value is not a valid encrypted blob"
	case errors.Is(err, kerrors.ErrSerialUnavailable):
		hint = "Set " + ui.Code.Sprint("[serial] source") + " in the config file; " +
			ui.Code.Sprint("iot-cache config show") + " lists the sources"
	case errors.Is(err, kerrors.ErrInvalidConfig):
		hint = "Fix the config file, or recreate it with " + ui.Code.Sprint("iot-cache config init --force")
	case errors.Is(err, kerrors.ErrSinkWriteFailure):
		hint = "Check the redis connection flags " + ui.Flag.Sprint("--host --port --password --ssl")
	}

	if hint == "" {
		return msg
	}
	return msg + "\n" + ui.Hint(hint)
}
