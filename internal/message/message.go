// Package message prints operator-facing output, separate from the slog
// diagnostics stream on stderr.
package message

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	outWriter io.Writer = os.Stdout

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
)

// SetOutput changes the output writer (useful for testing).
func SetOutput(w io.Writer) {
	outWriter = w
}

// SetNoColor disables colored output.
func SetNoColor(nc bool) {
	color.NoColor = nc
}

func printf(c *color.Color, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.Fprintf(outWriter, "%s %s\n", prefix, msg)
}

// Info prints an informational message.
func Info(format string, args ...interface{}) {
	printf(infoColor, "[*]", format, args...)
}

// Success prints a success message.
func Success(format string, args ...interface{}) {
	printf(successColor, "[+]", format, args...)
}

// Warning prints a warning message.
func Warning(format string, args ...interface{}) {
	printf(warningColor, "[!]", format, args...)
}

// Plain prints without prefix or color, for tabular detail lines.
func Plain(format string, args ...interface{}) {
	fmt.Fprintf(outWriter, format+"\n", args...)
}
