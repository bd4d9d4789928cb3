// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDecision prints a release decision using the configured output format.
func (ow *OutWriter) WriteDecision(model *schema.DecisionRenderModel, cfg *contract.Config, duration time.Duration) error {
	return PrintDecisionResult(model, cfg, duration)
}

// WriteHistory prints recent decisions using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.DecisionRecord, cfg *contract.Config) error {
	return PrintRecentDecisions(records, cfg)
}
