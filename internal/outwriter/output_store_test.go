package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpipe/assetgate/schema"
)

func int32Ptr(v int32) *int32       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func sampleRecords() []schema.QaRunRecord {
	start := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	return []schema.QaRunRecord{
		{
			RunID:         7,
			AssetID:       "a1b2c3d4e5f6a7b8",
			Source:        "artstation",
			Category:      "env_prop",
			Submitter:     "alice",
			StartTime:     start,
			RunDurationMs: int32Ptr(340),
			OverallStatus: "PASS",
			TriangleCount: int32Ptr(1200),
			DrawCalls:     int32Ptr(2),
			VRAMMb:        float64Ptr(21.33),
			BoneCount:     int32Ptr(0),
		},
		{
			RunID:         8,
			AssetID:       "deadbeef",
			Category:      "character",
			Submitter:     "bob",
			StartTime:     start.Add(time.Hour),
			OverallStatus: "FAIL",
		},
	}
}

func TestWriteStoreStatusText(t *testing.T) {
	status := &schema.ReportStoreStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalRuns:       12,
		TotalChecksRows: 340,
		LastRunID:       12,
		LastRunTime:     time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
		OldestRunTime:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err := writeStoreStatusText(&buf, status, plainConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Backend:     sqlite")
	assert.Contains(t, out, "Total runs:  12")
	assert.Contains(t, out, "Last run:    #12")
}

func TestWriteStoreStatusTextEmptyStore(t *testing.T) {
	status := &schema.ReportStoreStatus{Backend: "sqlite", Connected: true}

	var buf bytes.Buffer
	err := writeStoreStatusText(&buf, status, plainConfig())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Last run")
}

func TestWriteStoreStatusCSV(t *testing.T) {
	status := &schema.ReportStoreStatus{
		Backend:     "mysql",
		Connected:   true,
		TotalRuns:   3,
		LastRunID:   3,
		LastRunTime: time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, writeStoreStatusCSV(&buf, status))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "mysql", rows[1][0])
	assert.Equal(t, "true", rows[1][1])
	assert.Equal(t, "3", rows[1][2])
}

func TestWriteRunRecordsText(t *testing.T) {
	var buf bytes.Buffer
	err := writeRunRecordsText(&buf, sampleRecords(), plainConfig())
	require.NoError(t, err)

	out := buf.String()
	// Long asset IDs are truncated for the table.
	assert.Contains(t, out, "a1b2c3d4e5f...")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Showing 2 run(s)")
}

func TestWriteRunRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRunRecordsCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "340", rows[1][7])
	assert.Equal(t, "21.33", rows[1][10])

	// Missing optional columns render as "-".
	assert.Equal(t, "-", rows[2][7])
	assert.Equal(t, "-", rows[2][10])
}
