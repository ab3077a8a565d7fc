package iostore

import (
	"fmt"
	"time"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// PersistReport writes a finished QA report to the store as one run:
// a run row, one check row per stage check, then the final verdict.
func PersistReport(store contract.ReportStore, report *schema.QaReport, startTime, endTime time.Time, configParams map[string]any) (int64, error) {
	runID, err := store.BeginRun(report.Metadata, startTime, configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}

	for _, stage := range report.Stages {
		if len(stage.Checks) == 0 {
			continue
		}
		if err := store.RecordCheckResults(runID, stage.Name, stage.Checks, endTime); err != nil {
			return runID, fmt.Errorf("failed to record %s checks: %w", stage.Name, err)
		}
	}

	if err := store.EndRun(runID, endTime, report); err != nil {
		return runID, fmt.Errorf("failed to end run: %w", err)
	}

	return runID, nil
}
