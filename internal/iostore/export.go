package iostore

import (
	"errors"
	"fmt"

	"github.com/artpipe/assetgate/internal/parquet"
)

// ExecuteReportExport performs the actual export of report data to Parquet files.
func ExecuteReportExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the report store
	store := Manager.GetReportStore()
	if store == nil {
		return errors.New("report store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total QA runs: %d\n", status.TotalRuns)
	fmt.Printf("Total check rows: %d\n", status.TotalChecksRows)

	// Retrieve all QA runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve QA runs: %w", err)
	}

	// Retrieve all check rows
	checks, err := store.GetAllCheckRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve check results: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertQaRunRecords(runs)
	parquetChecks := parquet.ConvertCheckRecords(checks)

	// Write QA runs to Parquet
	runsFile := outputFile + ".qa_runs.parquet"
	if err := parquet.WriteQaRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write QA runs: %w", err)
	}
	fmt.Printf("Exported %d QA runs to: %s\n", len(parquetRuns), runsFile)

	// Write check results to Parquet
	checksFile := outputFile + ".check_results.parquet"
	if err := parquet.WriteCheckRecordsParquet(parquetChecks, checksFile); err != nil {
		return fmt.Errorf("failed to write check results: %w", err)
	}
	fmt.Printf("Exported %d check rows to: %s\n", len(parquetChecks), checksFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
