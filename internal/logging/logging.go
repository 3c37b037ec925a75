package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled diagnostics. Info and warn lines need Verbose or
// Debug; debug and error lines need Debug.
type Logger struct {
	Verbose bool
	Debug   bool
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+msg+"\n", args...)
	}
}

// WarnfUser prints a warning meant for the person running the command, regardless of verbosity.
func (l Logger) WarnfUser(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("Warning: ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stderr, color.RedString("[error] ")+msg+"\n", args...)
	}
}

// ErrorfAndReturn logs the message at error level and returns it as an error for cobra's RunE.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return fmt.Errorf(msg, args...)
}
