// Package history persists the decision audit trail.
package history

import (
	"sync"

	"github.com/huangsam/relgate/internal/contract"
)

// DecisionHistoryManager manages the decision history store instance.
type DecisionHistoryManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	decisions    contract.DecisionStore
}

var _ contract.HistoryManager = &DecisionHistoryManager{} // Compile-time check

// GetDecisionStore returns the decision store, or nil when history was never
// initialized.
func (mgr *DecisionHistoryManager) GetDecisionStore() contract.DecisionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.decisions
}
