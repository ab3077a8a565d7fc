package iostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpipe/assetgate/schema"
)

func sampleMetadata() schema.AssetMetadata {
	return schema.AssetMetadata{
		AssetID:   "a1b2c3d4",
		Source:    "artstation",
		Category:  schema.CategoryEnvProp,
		Submitter: "alice",
	}
}

func sampleFinishedReport() *schema.QaReport {
	return &schema.QaReport{
		Metadata:      sampleMetadata(),
		OverallStatus: schema.OverallPass,
		Stages: []schema.StageResult{
			{
				Name:   schema.StageGeometry,
				Status: schema.StagePass,
				Checks: []schema.CheckResult{
					{
						Name:          schema.CheckPolycountBudget,
						Status:        schema.CheckPass,
						MeasuredValue: 1200,
						Threshold:     map[string]int{"min": 500, "max": 5000},
						Message:       "Triangle count within budget",
					},
				},
			},
		},
		Performance: &schema.PerformanceEstimates{
			TriangleCount:    1200,
			DrawCallEstimate: 2,
			VRAMEstimateMB:   21.33,
			BoneCount:        0,
		},
	}
}

func TestReportStore_NoneBackend(t *testing.T) {
	store, err := NewReportStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(sampleMetadata(), time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.RecordCheckResults(1, schema.StageGeometry, sampleFinishedReport().Stages[0].Checks, time.Now())
	assert.NoError(t, err)

	err = store.EndRun(1, time.Now(), sampleFinishedReport())
	assert.NoError(t, err)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	err = store.Close()
	assert.NoError(t, err)
}

func TestReportStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginRun
	startTime := time.Now()
	configParams := map[string]any{
		"category":      "env_prop",
		"texture-limit": 2048,
	}
	runID, err := store.BeginRun(sampleMetadata(), startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test RecordCheckResults
	report := sampleFinishedReport()
	err = store.RecordCheckResults(runID, schema.StageGeometry, report.Stages[0].Checks, time.Now())
	assert.NoError(t, err)

	// Test EndRun
	err = store.EndRun(runID, time.Now(), report)
	assert.NoError(t, err)
}

func TestReportStore_RoundTrip(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	startTime := time.Now().Add(-time.Second)
	runID, err := store.BeginRun(sampleMetadata(), startTime, map[string]any{"category": "env_prop"})
	require.NoError(t, err)

	report := sampleFinishedReport()
	require.NoError(t, store.RecordCheckResults(runID, schema.StageGeometry, report.Stages[0].Checks, time.Now()))
	require.NoError(t, store.EndRun(runID, time.Now(), report))

	// Run rows come back with verdict and performance columns filled in
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "a1b2c3d4", runs[0].AssetID)
	assert.Equal(t, "artstation", runs[0].Source)
	assert.Equal(t, "env_prop", runs[0].Category)
	assert.Equal(t, "alice", runs[0].Submitter)
	assert.Equal(t, "PASS", runs[0].OverallStatus)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.GreaterOrEqual(t, *runs[0].RunDurationMs, int32(0))
	require.NotNil(t, runs[0].TriangleCount)
	assert.Equal(t, int32(1200), *runs[0].TriangleCount)
	require.NotNil(t, runs[0].VRAMMb)
	assert.InDelta(t, 21.33, *runs[0].VRAMMb, 0.001)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "env_prop")

	// Check rows carry JSON-encoded measured values and thresholds
	checks, err := store.GetAllCheckRecords()
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, runID, checks[0].RunID)
	assert.Equal(t, schema.StageGeometry, checks[0].StageName)
	assert.Equal(t, schema.CheckPolycountBudget, checks[0].CheckName)
	assert.Equal(t, "PASS", checks[0].Status)
	assert.Equal(t, "1200", checks[0].MeasuredValue)
	assert.JSONEq(t, `{"min":500,"max":5000}`, checks[0].Threshold)
	assert.False(t, checks[0].RecordedAt.IsZero())
}

func TestReportStore_EndRunWithoutPerformance(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(sampleMetadata(), time.Now(), nil)
	require.NoError(t, err)

	report := sampleFinishedReport()
	report.Performance = nil
	report.OverallStatus = schema.OverallFail
	require.NoError(t, store.EndRun(runID, time.Now(), report))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "FAIL", runs[0].OverallStatus)
	assert.Nil(t, runs[0].TriangleCount)
	assert.Nil(t, runs[0].VRAMMb)
}

func TestReportStore_GetStatus(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	// Two runs with check rows
	report := sampleFinishedReport()
	for i := 0; i < 2; i++ {
		runID, err := store.BeginRun(sampleMetadata(), time.Now(), nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordCheckResults(runID, schema.StageGeometry, report.Stages[0].Checks, time.Now()))
		require.NoError(t, store.EndRun(runID, time.Now(), report))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, 2, status.TotalChecksRows)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.False(t, status.OldestRunTime.IsZero())
	assert.Equal(t, int64(2), status.TableSizes[qaRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[checkResultsTable])
}

func TestReportStore_MultipleRuns(t *testing.T) {
	store, err := NewReportStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var ids []int64
	for i := 0; i < 3; i++ {
		runID, err := store.BeginRun(sampleMetadata(), time.Now(), nil)
		require.NoError(t, err)
		ids = append(ids, runID)
	}

	// IDs are unique and ascending
	assert.Equal(t, []int64{ids[0], ids[0] + 1, ids[0] + 2}, ids)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestReportStore_UnsupportedBackend(t *testing.T) {
	_, err := NewReportStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		backend   schema.DatabaseBackend
		want      string
	}{
		{"sqlite uses double quotes", qaRunsTable, schema.SQLiteBackend, `"assetgate_qa_runs"`},
		{"postgres uses double quotes", qaRunsTable, schema.PostgreSQLBackend, `"assetgate_qa_runs"`},
		{"mysql uses backticks", qaRunsTable, schema.MySQLBackend, "`assetgate_qa_runs`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteTableName(tt.tableName, tt.backend)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)

	// SQLite stores RFC3339Nano strings
	got := formatTime(ts, schema.SQLiteBackend)
	str, ok := got.(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, str)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	// MySQL and PostgreSQL take native time values
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestStoreManagerGetReportStore(t *testing.T) {
	mgr := &StoreManagerImpl{}
	assert.Nil(t, mgr.GetReportStore())

	store, err := NewReportStore(schema.NoneBackend, "")
	require.NoError(t, err)
	mgr.reports = store

	assert.NotNil(t, mgr.GetReportStore())
}
