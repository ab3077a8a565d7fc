package core

import "github.com/artpipe/assetgate/schema"

// ReportBuilder accumulates stage results and derives the overall verdict.
type ReportBuilder struct {
	metadata    schema.AssetMetadata
	stages      []schema.StageResult
	performance *schema.PerformanceEstimates
	export      *schema.ExportInfo
}

// NewReportBuilder returns a builder for the given asset metadata.
func NewReportBuilder(metadata schema.AssetMetadata) *ReportBuilder {
	return &ReportBuilder{metadata: metadata}
}

// AddStage appends a completed stage result.
func (b *ReportBuilder) AddStage(stage schema.StageResult) {
	b.stages = append(b.stages, stage)
}

// SetPerformance attaches the performance estimates.
func (b *ReportBuilder) SetPerformance(p schema.PerformanceEstimates) {
	b.performance = &p
}

// SetExport attaches the export descriptor.
func (b *ReportBuilder) SetExport(e schema.ExportInfo) {
	b.export = &e
}

// Finalize assembles the QaReport with the aggregated overall status.
func (b *ReportBuilder) Finalize() schema.QaReport {
	return schema.QaReport{
		Metadata:      b.metadata,
		OverallStatus: b.computeStatus(),
		Stages:        append([]schema.StageResult(nil), b.stages...),
		Performance:   b.performance,
		Export:        b.export,
	}
}

// computeStatus aggregates the overall verdict in strict precedence order:
// any failed stage wins, then any review flag, then any applied fix.
func (b *ReportBuilder) computeStatus() schema.OverallStatus {
	for _, stage := range b.stages {
		if stage.Status == schema.StageFail {
			return schema.OverallFail
		}
	}
	for _, stage := range b.stages {
		if len(stage.ReviewFlags) > 0 {
			return schema.OverallNeedsReview
		}
	}
	for _, stage := range b.stages {
		if len(stage.Fixes) > 0 {
			return schema.OverallPassWithFixes
		}
	}
	return schema.OverallPass
}
