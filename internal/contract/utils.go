package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/artpipe/assetgate/schema"
)

// Color variables for console output.
var (
	FailColor    = color.New(color.FgRed, color.Bold)     // failColor represents a hard rejection.
	ReviewColor  = color.New(color.FgMagenta, color.Bold) // reviewColor represents human attention needed.
	WarningColor = color.New(color.FgYellow)              // warningColor represents standard caution, not bold.
	PassColor    = color.New(color.FgGreen)               // passColor represents a clean result.
	SkippedColor = color.New(color.FgCyan)                // skippedColor represents an inapplicable check.
)

// StatusLabel returns a colored text label for console output (table).
// Plain status strings are used for CSV and JSON output.
func StatusLabel(status schema.CheckStatus) string {
	switch status {
	case schema.CheckFail:
		return FailColor.Sprint(string(status))
	case schema.CheckWarning:
		return WarningColor.Sprint(string(status))
	case schema.CheckSkipped:
		return SkippedColor.Sprint(string(status))
	default: // PASS
		return PassColor.Sprint(string(status))
	}
}

// OverallLabel returns a colored text label for the overall status banner.
func OverallLabel(status schema.OverallStatus) string {
	switch status {
	case schema.OverallFail:
		return FailColor.Sprint(string(status))
	case schema.OverallNeedsReview:
		return ReviewColor.Sprint(string(status))
	case schema.OverallPassWithFixes:
		return WarningColor.Sprint(string(status))
	default: // PASS
		return PassColor.Sprint(string(status))
	}
}

// SeverityLabel returns a colored text label for a review-flag severity.
func SeverityLabel(sev schema.Severity) string {
	switch sev {
	case schema.SeverityError:
		return FailColor.Sprint(string(sev))
	case schema.SeverityWarning:
		return WarningColor.Sprint(string(sev))
	default: // info
		return SkippedColor.Sprint(string(sev))
	}
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

// GetStoreDBFilePath returns the path to the SQLite DB file for report storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".assetgate_reports.db"
	}
	return filepath.Join(homeDir, ".assetgate_reports.db")
}

// TruncateName truncates an object or texture name to a maximum width with
// an ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// "..." and at least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
