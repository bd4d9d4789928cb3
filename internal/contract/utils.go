package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Outcome and change label constants.
const (
	NeededValue    = "RELEASE NEEDED"     // A release should be produced
	NotNeededValue = "RELEASE NOT NEEDED" // No release this run
	ChangedValue   = "changed"            // Module artifact differs
	UnchangedValue = "unchanged"          // Module artifact is identical
)

// Color variables for console output.
var (
	NeededColor    = color.New(color.FgGreen, color.Bold)  // neededColor signals a release is going out.
	NotNeededColor = color.New(color.FgYellow, color.Bold) // notNeededColor signals an intentional skip, not an error.
	ChangedColor   = color.New(color.FgCyan)               // changedColor highlights modules driving the release.
)

// GetPlainOutcome returns a plain text label for the decision outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainOutcome(releaseNeeded bool) string {
	if releaseNeeded {
		return NeededValue
	}
	return NotNeededValue
}

// GetColorOutcome returns a colored outcome label for console output.
// It uses GetPlainOutcome to determine the string, then applies the color.
func GetColorOutcome(releaseNeeded bool) string {
	if releaseNeeded {
		return NeededColor.Sprint(NeededValue)
	}
	return NotNeededColor.Sprint(NotNeededValue)
}

// GetPlainChangeLabel returns a plain text label for a comparison verdict.
func GetPlainChangeLabel(changed bool) string {
	if changed {
		return ChangedValue
	}
	return UnchangedValue
}

// GetColorChangeLabel returns a colored label for a comparison verdict.
func GetColorChangeLabel(changed bool) string {
	if changed {
		return ChangedColor.Sprint(ChangedValue)
	}
	return UnchangedValue
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
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

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for decision
// history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".relgate_history.db"
	}
	return filepath.Join(homeDir, ".relgate_history.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis prefix,
// keeping the tail since module coordinates and branch names disambiguate at
// the end. Requires maxWidth > 3 so there is room for both the "..." prefix
// and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
