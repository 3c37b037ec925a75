package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// Done prefixes msg with a success mark.
func Done(msg string) string {
	return Success.Sprint("✓") + " " + msg
}

// Failed prefixes msg with an error mark.
func Failed(msg string) string {
	return Error.Sprint("✗") + " " + msg
}

// Hint prefixes msg with an arrow, for follow-up suggestions.
func Hint(msg string) string {
	return Info.Sprint("→") + " " + msg
}

// noColor reports whether output should be plain, honoring NO_COLOR and
// fatih/color's own terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for different types of CLI output.
var (
	// Code formats runnable commands.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats store file and directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Key formats entry key names.
	Key = Formatter{color.New(color.FgCyan), "'", "'"}

	// Flag formats CLI flags like --overwrite.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats completed operations and the ✓ mark.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats failures and the ✗ mark.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats notices that need attention but do not fail the command.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and the → mark.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats advisory data such as the origin host annotation.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
