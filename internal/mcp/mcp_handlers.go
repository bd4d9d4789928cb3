package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/relgate/core"
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultHistoryLimit caps decision_history responses when no limit is given.
const defaultHistoryLimit = 10

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// resolvePattern picks the pattern from the request, then the base config,
// then the built-in default.
func (h *toolHandler) resolvePattern(request mcp.CallToolRequest) string {
	if p := request.GetString("branch_pattern", ""); p != "" {
		return p
	}
	if h.baseCfg != nil && h.baseCfg.BranchPattern != "" {
		return h.baseCfg.BranchPattern
	}
	return schema.DefaultBranchPattern
}

func (h *toolHandler) handleReleaseNeeded(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	signals := schema.SkipSignals{
		ExplicitSkip:                     request.GetBool("explicit_skip", false),
		SkipReleaseDirective:             request.GetBool("skip_release", false),
		SkipComparePublicationsDirective: request.GetBool("skip_compare_publications", false),
		IsPullRequest:                    request.GetBool("is_pull_request", false),
		BranchName:                       request.GetString("branch", ""),
	}
	if signals.BranchName == "" {
		return mcp.NewToolResultError("branch is required"), nil
	}

	// Directives may arrive pre-scanned as flags or embedded in the message
	if msg := request.GetString("commit_message", ""); msg != "" {
		skipRelease, skipCompare := contract.ScanCommitDirectives(msg)
		signals.SkipReleaseDirective = signals.SkipReleaseDirective || skipRelease
		signals.SkipComparePublicationsDirective = signals.SkipComparePublicationsDirective || skipCompare
	}

	var comparisons []schema.ComparisonResult
	if raw := request.GetString("comparisons", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &comparisons); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid comparisons JSON: %v", err)), nil
		}
	}

	report, err := core.Decide(signals, h.resolvePattern(request), comparisons)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decision failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBranchReleasable(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	branch := request.GetString("branch", "")
	if branch == "" {
		return mcp.NewToolResultError("branch is required"), nil
	}

	pattern, err := schema.CompileBranchPattern(h.resolvePattern(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid branch pattern: %v", err)), nil
	}

	signals := schema.SkipSignals{
		ExplicitSkip:         request.GetBool("explicit_skip", false),
		IsPullRequest:        request.GetBool("is_pull_request", false),
		SkipReleaseDirective: request.GetBool("skip_release", false),
		BranchName:           branch,
	}
	eligible, reason := core.EvaluateReleasability(signals, pattern)
	result := map[string]any{
		"branch":     branch,
		"releasable": eligible,
		"reason":     reason,
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDecisionHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("decision history is not initialized"), nil
	}
	store := h.mgr.GetDecisionStore()
	if store == nil {
		return mcp.NewToolResultError("decision history is not initialized"), nil
	}

	limit := request.GetInt("limit", defaultHistoryLimit)
	records, err := store.GetRecentDecisions(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
