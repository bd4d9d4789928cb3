package cmd

import (
	"github.com/huangsam/relgate/internal/history"
	"github.com/huangsam/relgate/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Relgate MCP server",
	Long:  `Launch an MCP server that allows AI agents to run release decisions and query the audit trail via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Decision output goes over the protocol, never to stdout,
		// so the normal console rendering is bypassed entirely.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, history.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
