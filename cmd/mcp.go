package cmd

import (
	"github.com/spf13/cobra"

	"github.com/artpipe/assetgate/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Assetgate MCP server",
	Long:  `Launch an MCP server that allows AI agents to run asset QA checks via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// No positional paths here; tools supply the scene path per call.
		return sharedSetup(rootCtx, "", "")
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
