// Package ui prints user-facing CLI output. Status and progress go to
// stderr so stdout stays clean for machine-readable results.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI SGR codes for the styles this CLI uses.
const (
	codeBold   = "1"
	codeDim    = "2"
	codeRed    = "31"
	codeGreen  = "32"
	codeYellow = "33"
)

var (
	writer io.Writer = os.Stderr

	stdoutColor = detectColor(os.Stdout)
	stderrColor = detectColor(os.Stderr)
)

// SetWriter overrides the status output writer (for testing). A nil w
// restores stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		writer = os.Stderr
		return
	}
	writer = w
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint wraps s in the given SGR code when enabled, else returns s as is.
func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold, Dim, Green, Red, and Yellow style strings destined for stdout.
func Bold(s string) string   { return paint(stdoutColor, codeBold, s) }
func Dim(s string) string    { return paint(stdoutColor, codeDim, s) }
func Green(s string) string  { return paint(stdoutColor, codeGreen, s) }
func Red(s string) string    { return paint(stdoutColor, codeRed, s) }
func Yellow(s string) string { return paint(stdoutColor, codeYellow, s) }

// OKTag, FailTag, and WarnTag are the status glyphs used in reports.
func OKTag() string   { return Green("✓") }
func FailTag() string { return Red("✗") }
func WarnTag() string { return Yellow("⚠") }

// Section prints a bold title with a thin underline to stdout.
func Section(title string) {
	fmt.Println(Bold(title))
	fmt.Println(Dim(strings.Repeat("─", len(title))))
}

// Warn prints a user-facing warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(writer, "%s %s\n", paint(stderrColor, codeYellow, "Warning:"), msg)
}

// Warnf prints a formatted user-facing warning to stderr.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Error prints a user-facing error to stderr.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", paint(stderrColor, codeRed, "Error:"), msg)
}

// Errorf prints a formatted user-facing error to stderr.
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Info prints a user-facing message to stderr with no prefix.
func Info(msg string) {
	fmt.Fprintln(writer, msg)
}

// Infof prints a formatted user-facing message to stderr with no prefix.
func Infof(format string, args ...any) {
	fmt.Fprintf(writer, format+"\n", args...)
}
