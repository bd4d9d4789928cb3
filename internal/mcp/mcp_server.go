// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/relgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Relgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Relgate Decision Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: release_needed ---
	s.AddTool(mcp.NewTool("release_needed",
		mcp.WithDescription("Decide whether a release is needed from skip signals and module comparison results."),
		mcp.WithString("branch", mcp.Description("Branch the build runs on."), mcp.Required()),
		mcp.WithString("branch_pattern", mcp.Description("Regular expression a releasable branch must fully match. Defaults to 'main|master|release/.+'.")),
		mcp.WithString("comparisons", mcp.Description("JSON array of module comparison results, e.g. [{\"module\":\"api\",\"changed\":true,\"description\":\"artifact differs\"}].")),
		mcp.WithString("commit_message", mcp.Description("Commit message to scan for skip directives. Directive flags below win when set explicitly.")),
		mcp.WithBoolean("explicit_skip", mcp.Description("Environment-level skip override.")),
		mcp.WithBoolean("is_pull_request", mcp.Description("Whether the build is for a pull request.")),
		mcp.WithBoolean("skip_release", mcp.Description("Whether the commit carries a skip-release directive.")),
		mcp.WithBoolean("skip_compare_publications", mcp.Description("Whether the commit carries a skip-compare-publications directive.")),
	), h.handleReleaseNeeded)

	// --- 2. Tool: branch_releasable ---
	s.AddTool(mcp.NewTool("branch_releasable",
		mcp.WithDescription("Check whether a branch is eligible for release under the configured branch pattern."),
		mcp.WithString("branch", mcp.Description("Branch name to check."), mcp.Required()),
		mcp.WithString("branch_pattern", mcp.Description("Regular expression a releasable branch must fully match.")),
		mcp.WithBoolean("explicit_skip", mcp.Description("Environment-level skip override.")),
		mcp.WithBoolean("is_pull_request", mcp.Description("Whether the build is for a pull request.")),
		mcp.WithBoolean("skip_release", mcp.Description("Whether the commit carries a skip-release directive.")),
	), h.handleBranchReleasable)

	// --- 3. Tool: decision_history ---
	s.AddTool(mcp.NewTool("decision_history",
		mcp.WithDescription("Fetch the most recent release decisions from the audit history."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of decisions to return. Defaults to 10.")),
	), h.handleDecisionHistory)

	return s
}

// StartMCPServer starts the Relgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
