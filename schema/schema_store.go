package schema

import "time"

// ReportStoreStatus represents the status of the report store.
type ReportStoreStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalChecksRows int              `json:"total_checks_rows"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// QaRunRecord represents a row from the assetgate_qa_runs table.
type QaRunRecord struct {
	RunID         int64
	AssetID       string
	Source        string
	Category      string
	Submitter     string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	OverallStatus string
	TriangleCount *int32
	DrawCalls     *int32
	VRAMMb        *float64
	BoneCount     *int32
	ConfigParams  *string
}

// CheckRecord represents a row from the assetgate_check_results table.
type CheckRecord struct {
	RunID         int64
	StageName     string
	CheckName     string
	Status        string
	MeasuredValue string // JSON-encoded measured value
	Threshold     string // JSON-encoded threshold
	Message       string
	RecordedAt    time.Time
}
