package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// WriteStoreStatusResults outputs the report-store status, dispatching based
// on the output format configured.
func WriteStoreStatusResults(status *schema.ReportStoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusCSV(w, status)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusText(w, status, cfg)
		}, "Wrote text")
	}
}

func writeStoreStatusText(w io.Writer, status *schema.ReportStoreStatus, cfg *contract.Config) error {
	header := "Report Store Status"
	if cfg.UseEmojis {
		header = "🗄️  " + header
	}
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Backend:     %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Connected:   %t\n", status.Connected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Total runs:  %d\n", status.TotalRuns); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Check rows:  %d\n", status.TotalChecksRows); err != nil {
		return err
	}
	if status.TotalRuns > 0 {
		if _, err := fmt.Fprintf(w, "  Last run:    #%d at %s\n",
			status.LastRunID, status.LastRunTime.Format(time.RFC3339)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Oldest run:  %s\n",
			status.OldestRunTime.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	for table, size := range status.TableSizes {
		if _, err := fmt.Fprintf(w, "  Table %s: %d rows\n", table, size); err != nil {
			return err
		}
	}
	return nil
}

func writeStoreStatusCSV(w io.Writer, status *schema.ReportStoreStatus) error {
	header := []string{"backend", "connected", "total_runs", "total_checks_rows", "last_run_id", "last_run_time"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		return csvWriter.Write([]string{
			status.Backend,
			strconv.FormatBool(status.Connected),
			strconv.Itoa(status.TotalRuns),
			strconv.Itoa(status.TotalChecksRows),
			strconv.FormatInt(status.LastRunID, 10),
			status.LastRunTime.Format(time.RFC3339),
		})
	})
}

// WriteRunRecordResults outputs stored run records, dispatching based on the
// output format configured.
func WriteRunRecordResults(records []schema.QaRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunRecordsCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunRecordsText(w, records, cfg)
		}, "Wrote table")
	}
}

func writeRunRecordsText(w io.Writer, records []schema.QaRunRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Asset", "Category", "Submitter", "Status", "Start", "Duration", "Tris"})

	var data [][]string
	for _, rec := range records {
		data = append(data, []string{
			strconv.FormatInt(rec.RunID, 10),
			contract.TruncateName(rec.AssetID, 14),
			rec.Category,
			rec.Submitter,
			rec.OverallStatus,
			rec.StartTime.Format("2006-01-02 15:04:05"),
			formatDurationMs(rec.RunDurationMs),
			formatOptionalInt32(rec.TriangleCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d run(s)\n", len(records))
	return err
}

func writeRunRecordsCSV(w io.Writer, records []schema.QaRunRecord) error {
	header := []string{
		"run_id",
		"asset_id",
		"source",
		"category",
		"submitter",
		"overall_status",
		"start_time",
		"duration_ms",
		"triangle_count",
		"draw_calls",
		"vram_mb",
		"bone_count",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				strconv.FormatInt(rec.RunID, 10),
				rec.AssetID,
				rec.Source,
				rec.Category,
				rec.Submitter,
				rec.OverallStatus,
				rec.StartTime.Format(time.RFC3339),
				formatOptionalInt32(rec.RunDurationMs),
				formatOptionalInt32(rec.TriangleCount),
				formatOptionalInt32(rec.DrawCalls),
				formatOptionalFloat(rec.VRAMMb),
				formatOptionalInt32(rec.BoneCount),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func formatDurationMs(ms *int32) string {
	if ms == nil {
		return "-"
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}

func formatOptionalInt32(v *int32) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(int64(*v), 10)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
