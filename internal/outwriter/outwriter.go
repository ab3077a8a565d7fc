// Package outwriter has output and writer logic for QA reports and the
// report store views.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a full QA report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.QaReport, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResults(report, cfg, duration)
}

// WriteStoreStatus prints the report-store status using the configured output format.
func (ow *OutWriter) WriteStoreStatus(status *schema.ReportStoreStatus, cfg *contract.Config) error {
	return WriteStoreStatusResults(status, cfg)
}

// WriteRunRecords prints stored run records using the configured output format.
func (ow *OutWriter) WriteRunRecords(records []schema.QaRunRecord, cfg *contract.Config) error {
	return WriteRunRecordResults(records, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for check names and
// messages in table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the stage, check, status and measured/threshold
	// columns with borders and padding.
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable message width
		return 20
	}
	if available > 80 {
		// Maximum message width to prevent overly wide tables
		return 80
	}
	return available
}
