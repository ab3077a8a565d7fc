package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		checks []CheckResult
		want   StageStatus
	}{
		{
			name:   "empty checks pass",
			checks: nil,
			want:   StagePass,
		},
		{
			name: "single fail fails stage",
			checks: []CheckResult{
				{Name: "a", Status: CheckPass},
				{Name: "b", Status: CheckFail},
			},
			want: StageFail,
		},
		{
			name: "warnings never fail stage",
			checks: []CheckResult{
				{Name: "a", Status: CheckWarning},
				{Name: "b", Status: CheckWarning},
			},
			want: StagePass,
		},
		{
			name: "skipped never fails stage",
			checks: []CheckResult{
				{Name: "a", Status: CheckSkipped},
			},
			want: StagePass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StageStatusOf(tt.checks))
		})
	}
}

func TestFindCheck(t *testing.T) {
	stages := []StageResult{
		{
			Name:   StageGeometry,
			Status: StageFail,
			Checks: []CheckResult{
				{Name: CheckPolycountBudget, Status: CheckFail, MeasuredValue: 100},
				{Name: CheckNonManifold, Status: CheckPass},
			},
		},
		{
			Name:   StageUV,
			Status: StagePass,
			Checks: []CheckResult{
				{Name: CheckUVOverlap, Status: CheckPass},
			},
		},
	}

	got := FindCheck(stages, StageGeometry, CheckPolycountBudget)
	require.NotNil(t, got)
	assert.Equal(t, CheckFail, got.Status)
	assert.Equal(t, 100, got.MeasuredValue)

	assert.Nil(t, FindCheck(stages, StageGeometry, "nope"))
	assert.Nil(t, FindCheck(stages, "nope", CheckUVOverlap))
}

func TestGeometryConfigBudgetFallback(t *testing.T) {
	cfg := NewGeometryConfig("made_up_category")
	assert.Equal(t, DefaultTriangleBudgets[CategoryEnvProp], cfg.Budget())

	cfg = NewGeometryConfig(CategoryCharacter)
	assert.Equal(t, TriangleBudget{Min: 15000, Max: 30000}, cfg.Budget())
}

func TestQaReportJSONRoundTrip(t *testing.T) {
	report := QaReport{
		Metadata: AssetMetadata{
			AssetID:             "d4b7e1f0",
			Source:              "artstation-drop",
			Category:            CategoryHeroProp,
			SubmissionDate:      "2026-08-28",
			ProcessingTimestamp: "2026-08-28T10:00:00Z",
			Submitter:           "outsource-studio-3",
		},
		OverallStatus: OverallNeedsReview,
		Stages: []StageResult{
			{
				Name:   StageGeometry,
				Status: StagePass,
				Checks: []CheckResult{
					{Name: CheckPolycountBudget, Status: CheckPass, MeasuredValue: float64(7200), Threshold: float64(15000), Message: "within budget"},
				},
			},
			{
				Name:   StageRemediation,
				Status: StagePass,
				Fixes: []FixEntry{
					{Action: FixResizeTextures, Target: "T_Crate_D", BeforeValue: []any{float64(4096), float64(4096)}, AfterValue: []any{float64(2048), float64(2048)}},
				},
				ReviewFlags: []ReviewFlag{
					{Issue: "uv:uv_overlap", Severity: SeverityWarning, Description: "UV islands overlap"},
				},
			},
		},
		Performance: &PerformanceEstimates{TriangleCount: 7200, DrawCallEstimate: 3, VRAMEstimateMB: 21.3, BoneCount: 0},
		Export:      &ExportInfo{Format: "gltf", Path: "/out/d4b7e1f0.gltf", AxisConvention: "-Z forward, Y up", Scale: 1.0},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var got QaReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report, got)
}
