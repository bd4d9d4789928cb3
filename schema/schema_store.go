package schema

import "time"

// DecisionRecord represents a row from the relgate_decisions table. One row
// is written for every decision a driver runs, forming an audit trail of why
// releases were produced or skipped.
type DecisionRecord struct {
	DecisionID     int64     `json:"decision_id"`
	DecidedAt      time.Time `json:"decided_at"`
	Mode           string    `json:"mode"`
	Branch         string    `json:"branch"`
	Version        string    `json:"version,omitempty"`
	ReleaseNeeded  bool      `json:"release_needed"`
	Reasons        []string  `json:"reasons"`
	ModulesTotal   int       `json:"modules_total"`
	ModulesChanged int       `json:"modules_changed"`
}
