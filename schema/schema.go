// Package schema has report models, status taxonomies and policy defaults
// for all parts of assetgate.
package schema

// CheckResult holds the outcome of a single check within a stage.
// MeasuredValue and Threshold are result-specific: a number, a string, or a
// flat map of those. Results are immutable once produced.
type CheckResult struct {
	Name          string      `json:"name"`
	Status        CheckStatus `json:"status"`
	MeasuredValue any         `json:"measured_value"`
	Threshold     any         `json:"threshold"`
	Message       string      `json:"message"`
}

// FixEntry is the audit record for one applied auto-remediation action.
// It is never mutated after creation.
type FixEntry struct {
	Action      FixAction `json:"action"`
	Target      string    `json:"target"`
	BeforeValue any       `json:"before_value"`
	AfterValue  any       `json:"after_value"`
}

// ReviewFlag routes an asset to human review. It carries no remediation
// obligation of its own.
type ReviewFlag struct {
	Issue       string   `json:"issue"` // "{stage}:{check}"
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// StageResult holds everything one pipeline stage produced. Fixes and
// ReviewFlags are populated only by the remediation stage.
type StageResult struct {
	Name        string        `json:"name"`
	Status      StageStatus   `json:"status"`
	Checks      []CheckResult `json:"checks"`
	Fixes       []FixEntry    `json:"fixes"`
	ReviewFlags []ReviewFlag  `json:"review_flags"`
}

// PerformanceEstimates holds derived runtime cost metrics for an asset.
type PerformanceEstimates struct {
	TriangleCount    int     `json:"triangle_count"`
	DrawCallEstimate int     `json:"draw_call_estimate"`
	VRAMEstimateMB   float64 `json:"vram_estimate_mb"`
	BoneCount        int     `json:"bone_count"`
}

// AssetMetadata identifies one asset submission. AssetID is freshly
// generated on every run, so re-running the same file yields a new ID.
type AssetMetadata struct {
	AssetID             string        `json:"asset_id"`
	Source              string        `json:"source"`
	Category            AssetCategory `json:"category"`
	SubmissionDate      string        `json:"submission_date"`
	ProcessingTimestamp string        `json:"processing_timestamp"`
	Submitter           string        `json:"submitter"`
}

// ExportInfo describes the exported artifact attached to a report.
type ExportInfo struct {
	Format         string  `json:"format"`
	Path           string  `json:"path"`
	AxisConvention string  `json:"axis_convention"`
	Scale          float64 `json:"scale"`
}

// QaReport aggregates all stage results into one verdict for an asset.
type QaReport struct {
	Metadata      AssetMetadata         `json:"metadata"`
	OverallStatus OverallStatus         `json:"overall_status"`
	Stages        []StageResult         `json:"stages"`
	Performance   *PerformanceEstimates `json:"performance,omitempty"`
	Export        *ExportInfo           `json:"export,omitempty"`
}

// FindStage returns the stage with the given name, or nil.
func (r *QaReport) FindStage(name string) *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Name == name {
			return &r.Stages[i]
		}
	}
	return nil
}

// FindCheck returns the first check matching stage and check name, or nil.
func FindCheck(stages []StageResult, stageName, checkName string) *CheckResult {
	for i := range stages {
		if stages[i].Name != stageName {
			continue
		}
		for j := range stages[i].Checks {
			if stages[i].Checks[j].Name == checkName {
				return &stages[i].Checks[j]
			}
		}
	}
	return nil
}

// StageStatusOf derives a stage status from its checks: FAIL iff at least
// one check failed. WARNING and SKIPPED checks never fail a stage.
func StageStatusOf(checks []CheckResult) StageStatus {
	for _, c := range checks {
		if c.Status == CheckFail {
			return StageFail
		}
	}
	return StagePass
}
