// Package iostore persists QA runs and check results to a SQL backend.
// SQLite is the default; MySQL and PostgreSQL are supported for shared
// studio deployments. The NoneBackend disables persistence entirely.
package iostore

import (
	"sync"

	"github.com/artpipe/assetgate/internal/contract"
)

// StoreManagerImpl manages the report store with thread-safe access.
type StoreManagerImpl struct {
	sync.RWMutex
	reports contract.ReportStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetReportStore returns the report store instance.
func (mgr *StoreManagerImpl) GetReportStore() contract.ReportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.reports
}
