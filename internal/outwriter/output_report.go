package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// WriteReportResults outputs a QA report, dispatching based on the output format configured.
func WriteReportResults(report *schema.QaReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, cfg)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		}, "Wrote table")
	}
}

// writeReportText generates the human-readable report: a banner, the check
// table, then fixes, review flags and performance estimates when present.
func writeReportText(w io.Writer, report *schema.QaReport, cfg *contract.Config, duration time.Duration) error {
	banner := "QA Report"
	if cfg.UseEmojis {
		banner = "🎨 " + banner
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%s, submitted by %s)\n",
		banner, report.Metadata.AssetID, report.Metadata.Category, report.Metadata.Submitter); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall: %s\n\n", overallCell(report.OverallStatus, cfg)); err != nil {
		return err
	}

	if err := writeCheckTable(w, report, cfg); err != nil {
		return err
	}

	for _, stage := range report.Stages {
		if len(stage.Fixes) > 0 {
			if err := writeFixTable(w, stage.Fixes, cfg); err != nil {
				return err
			}
		}
		if len(stage.ReviewFlags) > 0 {
			if err := writeReviewTable(w, stage.ReviewFlags, cfg); err != nil {
				return err
			}
		}
	}

	if report.Performance != nil {
		p := report.Performance
		if _, err := fmt.Fprintf(w, "Performance: %d triangles, ~%d draw calls, %.*f MB VRAM, %d bones\n",
			p.TriangleCount, p.DrawCallEstimate, cfg.Precision, p.VRAMEstimateMB, p.BoneCount); err != nil {
			return err
		}
	}
	if report.Export != nil {
		if _, err := fmt.Fprintf(w, "Export: %s (%s, scale %g) at %s\n",
			report.Export.Format, report.Export.AxisConvention, report.Export.Scale, report.Export.Path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Checked in %v\n", duration); err != nil {
		return err
	}
	return nil
}

func writeCheckTable(w io.Writer, report *schema.QaReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Stage", "Check", "Status", "Measured", "Threshold", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, stage := range report.Stages {
		for _, check := range stage.Checks {
			data = append(data, []string{
				stage.Name,
				check.Name,
				statusCell(check.Status, cfg),
				contract.TruncateName(formatValue(check.MeasuredValue, cfg.Precision), maxWidth),
				contract.TruncateName(formatValue(check.Threshold, cfg.Precision), maxWidth),
				contract.TruncateName(check.Message, maxWidth),
			})
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeFixTable(w io.Writer, fixes []schema.FixEntry, cfg *contract.Config) error {
	header := "Applied fixes"
	if cfg.UseEmojis {
		header = "🔧 " + header
	}
	if _, err := fmt.Fprintf(w, "%s:\n", header); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Action", "Target", "Before", "After"})
	var data [][]string
	for _, fix := range fixes {
		data = append(data, []string{
			string(fix.Action),
			fix.Target,
			formatValue(fix.BeforeValue, cfg.Precision),
			formatValue(fix.AfterValue, cfg.Precision),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeReviewTable(w io.Writer, flags []schema.ReviewFlag, cfg *contract.Config) error {
	header := "Needs human review"
	if cfg.UseEmojis {
		header = "👀 " + header
	}
	if _, err := fmt.Fprintf(w, "%s:\n", header); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Issue", "Severity", "Description"})
	var data [][]string
	for _, flag := range flags {
		data = append(data, []string{
			flag.Issue,
			severityCell(flag.Severity, cfg),
			flag.Description,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeReportCSV writes one row per check; fixes and review flags carry a
// synthetic check name so the whole report survives a flat export.
func writeReportCSV(w io.Writer, report *schema.QaReport, cfg *contract.Config) error {
	header := []string{
		"asset_id",
		"category",
		"overall_status",
		"stage",
		"check",
		"status",
		"measured",
		"threshold",
		"message",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		prefix := []string{
			report.Metadata.AssetID,
			string(report.Metadata.Category),
			string(report.OverallStatus),
		}
		for _, stage := range report.Stages {
			for _, check := range stage.Checks {
				rec := append(append([]string{}, prefix...),
					stage.Name,
					check.Name,
					string(check.Status),
					formatValue(check.MeasuredValue, cfg.Precision),
					formatValue(check.Threshold, cfg.Precision),
					check.Message,
				)
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			for _, fix := range stage.Fixes {
				rec := append(append([]string{}, prefix...),
					stage.Name,
					"fix:"+string(fix.Action),
					string(schema.CheckPass),
					formatValue(fix.BeforeValue, cfg.Precision),
					formatValue(fix.AfterValue, cfg.Precision),
					fix.Target,
				)
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			for _, flag := range stage.ReviewFlags {
				rec := append(append([]string{}, prefix...),
					stage.Name,
					"review:"+flag.Issue,
					string(flag.Severity),
					"",
					"",
					flag.Description,
				)
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func statusCell(status schema.CheckStatus, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.StatusLabel(status)
	}
	return string(status)
}

func overallCell(status schema.OverallStatus, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.OverallLabel(status)
	}
	return string(status)
}

func severityCell(sev schema.Severity, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.SeverityLabel(sev)
	}
	return string(sev)
}
