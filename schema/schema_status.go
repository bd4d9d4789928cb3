package schema

import "time"

// HistoryStatus represents the status of the decision history store.
type HistoryStatus struct {
	Backend            string    `json:"backend"`
	Connected          bool      `json:"connected"`
	TotalDecisions     int       `json:"total_decisions"`
	ReleasesNeeded     int       `json:"releases_needed"`
	LastDecisionTime   time.Time `json:"last_decision_time"`
	OldestDecisionTime time.Time `json:"oldest_decision_time"`
}
