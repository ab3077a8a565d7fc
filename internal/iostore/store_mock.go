package iostore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ contract.ReportStore = &MockReportStore{} // Compile-time check

// BeginRun implements the ReportStore interface.
func (m *MockReportStore) BeginRun(meta schema.AssetMetadata, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(meta, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the ReportStore interface.
func (m *MockReportStore) EndRun(runID int64, endTime time.Time, report *schema.QaReport) error {
	args := m.Called(runID, endTime, report)
	return args.Error(0)
}

// RecordCheckResults implements the ReportStore interface.
func (m *MockReportStore) RecordCheckResults(runID int64, stageName string, checks []schema.CheckResult, recordedAt time.Time) error {
	args := m.Called(runID, stageName, checks, recordedAt)
	return args.Error(0)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.ReportStoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ReportStoreStatus), args.Error(1)
}

// GetAllRuns implements the ReportStore interface.
func (m *MockReportStore) GetAllRuns() ([]schema.QaRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.QaRunRecord)
	return runs, args.Error(1)
}

// GetAllCheckRecords implements the ReportStore interface.
func (m *MockReportStore) GetAllCheckRecords() ([]schema.CheckRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.CheckRecord)
	return records, args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
