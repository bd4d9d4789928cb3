package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/internal/outwriter"
	"github.com/huangsam/relgate/schema"
)

// ExecuteReleaseAssert runs the assert driver for CI/CD gating. The decision
// is printed with all its reasons, recorded to history, and a "release not
// needed" outcome stops the pipeline with a non-zero exit code.
func ExecuteReleaseAssert(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	model, duration, err := runDecision(ctx, cfg, mgr, schema.AssertMode)
	if err != nil {
		return err
	}

	if err := outwriter.NewOutWriter().WriteDecision(model, cfg, duration); err != nil {
		return err
	}

	if !model.Report.ReleaseNeeded {
		fmt.Println("Stopping the pipeline: no release is needed for this build.")
		os.Exit(1)
	}
	return nil
}

// ExecuteReleaseReport runs the informational driver. It prints the same
// decision the assert driver would make but always exits successfully, which
// makes it safe for dry runs and diagnostics.
func ExecuteReleaseReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	model, duration, err := runDecision(ctx, cfg, mgr, schema.ReportMode)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDecision(model, cfg, duration)
}

// runDecision is the mode-agnostic path shared by both drivers: gather the
// input snapshot, decide, record the outcome. Only the post-processing of the
// boolean differs between assert and report.
func runDecision(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, mode schema.DecisionMode) (*schema.DecisionRenderModel, time.Duration, error) {
	start := time.Now()

	client := contract.NewLocalGitClient()
	input, err := GatherDecisionInput(ctx, cfg, client)
	if err != nil {
		return nil, 0, err
	}

	if cfg.Debug {
		spew.Fdump(os.Stderr, input)
	}

	report, err := Decide(input.Signals, input.BranchPattern, input.Comparisons)
	if err != nil {
		return nil, 0, err
	}

	recordDecision(mgr, mode, input, report)

	model := &schema.DecisionRenderModel{
		Mode:          mode,
		Provider:      input.Provider,
		Branch:        input.Signals.BranchName,
		BranchPattern: input.BranchPattern,
		Version:       input.Version,
		Report:        report,
		Comparisons:   input.Comparisons,
	}
	return model, time.Since(start), nil
}

// recordDecision appends the decision to the audit history. Recording is
// best-effort: a broken history backend must not change the decision outcome.
func recordDecision(mgr contract.HistoryManager, mode schema.DecisionMode, input *DecisionInput, report schema.DecisionReport) {
	if mgr == nil {
		return
	}
	store := mgr.GetDecisionStore()
	if store == nil {
		return
	}

	record := schema.DecisionRecord{
		DecidedAt:      time.Now().UTC(),
		Mode:           string(mode),
		Branch:         input.Signals.BranchName,
		Version:        input.Version.Version,
		ReleaseNeeded:  report.ReleaseNeeded,
		Reasons:        report.Reasons,
		ModulesTotal:   len(input.Comparisons),
		ModulesChanged: schema.CountChanged(input.Comparisons),
	}
	if _, err := store.RecordDecision(record); err != nil {
		contract.LogWarn("recording decision history", err)
	}
}
