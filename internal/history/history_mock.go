package history

import (
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetDecisionStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetDecisionStore() contract.DecisionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.DecisionStore)
	return store
}

// MockDecisionStore is a mock implementation of DecisionStore for testing.
type MockDecisionStore struct {
	mock.Mock
}

var _ contract.DecisionStore = &MockDecisionStore{} // Compile-time check

// RecordDecision implements the DecisionStore interface.
func (m *MockDecisionStore) RecordDecision(record schema.DecisionRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

// GetRecentDecisions implements the DecisionStore interface.
func (m *MockDecisionStore) GetRecentDecisions(limit int) ([]schema.DecisionRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.DecisionRecord)
	return records, args.Error(1)
}

// GetStatus implements the DecisionStore interface.
func (m *MockDecisionStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the DecisionStore interface.
func (m *MockDecisionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
