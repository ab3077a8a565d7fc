// Package parquet provides data structures and functions for exporting QA
// report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/artpipe/assetgate/schema"
)

// QaRun represents a single QA pipeline run with metadata.
// This struct maps to the assetgate_qa_runs database table.
type QaRun struct {
	// RunID is the unique identifier for this QA run
	RunID int64 `parquet:"run_id,snappy"`

	// AssetID identifies the asset submission checked by this run
	AssetID string `parquet:"asset_id,snappy"`

	// Source is where the asset came from
	Source string `parquet:"source,snappy"`

	// Category is the asset category the run was checked against
	Category string `parquet:"category,snappy"`

	// Submitter is who submitted the asset
	Submitter string `parquet:"submitter,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// OverallStatus is the final verdict for the asset
	OverallStatus string `parquet:"overall_status,snappy"`

	// TriangleCount is the scene triangle total (nullable)
	TriangleCount *int32 `parquet:"triangle_count,optional,snappy"`

	// DrawCalls is the estimated draw call count (nullable)
	DrawCalls *int32 `parquet:"draw_calls,optional,snappy"`

	// VRAMMb is the estimated texture VRAM in megabytes (nullable)
	VRAMMb *float64 `parquet:"vram_mb,optional,snappy"`

	// BoneCount is the total bone count across armatures (nullable)
	BoneCount *int32 `parquet:"bone_count,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CheckRow represents one check result within a QA run.
// This struct maps to the assetgate_check_results database table.
type CheckRow struct {
	// RunID references the parent QA run
	RunID int64 `parquet:"run_id,snappy"`

	// StageName is the pipeline stage that produced the check
	StageName string `parquet:"stage_name,snappy"`

	// CheckName is the individual check identifier
	CheckName string `parquet:"check_name,snappy"`

	// Status is the check outcome (PASS, FAIL, WARNING, SKIPPED)
	Status string `parquet:"status,snappy"`

	// MeasuredValue is the JSON-encoded measured value
	MeasuredValue string `parquet:"measured_value,snappy"`

	// Threshold is the JSON-encoded threshold the value was compared against
	Threshold string `parquet:"threshold,snappy"`

	// Message is the human-readable check message
	Message string `parquet:"message,snappy"`

	// RecordedAt is when this row was written (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteQaRunsParquet writes a slice of QaRun structs to a Parquet file.
func WriteQaRunsParquet(data []QaRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the QaRun struct tags
	writer := parquet.NewGenericWriter[QaRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCheckRecordsParquet writes a slice of CheckRow structs to a Parquet file.
func WriteCheckRecordsParquet(data []CheckRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CheckRow struct tags
	writer := parquet.NewGenericWriter[CheckRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertQaRunRecords converts schema.QaRunRecord to QaRun for Parquet export.
func ConvertQaRunRecords(records []schema.QaRunRecord) []QaRun {
	result := make([]QaRun, len(records))
	for i, record := range records {
		result[i] = QaRun{
			RunID:         record.RunID,
			AssetID:       record.AssetID,
			Source:        record.Source,
			Category:      record.Category,
			Submitter:     record.Submitter,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			OverallStatus: record.OverallStatus,
			TriangleCount: record.TriangleCount,
			DrawCalls:     record.DrawCalls,
			VRAMMb:        record.VRAMMb,
			BoneCount:     record.BoneCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertCheckRecords converts schema.CheckRecord to CheckRow for Parquet export.
func ConvertCheckRecords(records []schema.CheckRecord) []CheckRow {
	result := make([]CheckRow, len(records))
	for i, record := range records {
		result[i] = CheckRow{
			RunID:         record.RunID,
			StageName:     record.StageName,
			CheckName:     record.CheckName,
			Status:        record.Status,
			MeasuredValue: record.MeasuredValue,
			Threshold:     record.Threshold,
			Message:       record.Message,
			RecordedAt:    record.RecordedAt,
		}
	}
	return result
}
