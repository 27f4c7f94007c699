package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devexhq/devex/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the DevEx MCP server",
	Long:  `Launch an MCP server that allows AI agents to run comparisons and pattern analysis via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Only output-level config applies here; tool calls carry their own
		// paths and reference dates over the protocol.
		return outputSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
