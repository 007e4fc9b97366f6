package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/whatsmygrade/schema"
)

// Color variables for console output.
var (
	PassColor      = color.New(color.FgGreen, color.Bold) // PassColor marks a course that is already passed.
	ReachableColor = color.New(color.FgYellow)            // ReachableColor marks a minimum that can still be met.
	FailColor      = color.New(color.FgRed, color.Bold)   // FailColor marks an unattainable pass.
	UnknownColor   = color.New(color.FgYellow)            // UnknownColor marks ungraded categories.
	CategoryColor  = color.New(color.FgCyan)              // CategoryColor marks category names.
)

// OutcomeColor returns the color used for the numbers of a verdict.
func OutcomeColor(o schema.Outcome) *color.Color {
	switch o {
	case schema.AlreadyPassing:
		return PassColor
	case schema.MinimumRequired:
		return ReachableColor
	default:
		return FailColor
	}
}

// FormatPercent renders a fraction as a percentage with the given decimal places.
func FormatPercent(v float64, precision int) string {
	return strconv.FormatFloat(v*100, 'f', precision, 64) + "%"
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// NewLogger returns a text logger writing to w. Debug enables the parse and solve trace;
// otherwise only warnings get through.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
