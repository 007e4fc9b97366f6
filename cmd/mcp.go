package cmd

import (
	"github.com/huangsam/whatsmygrade/core"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the whatsmygrade MCP server",
	Long:  `Launch an MCP server that allows AI agents to solve grade files and evaluate grade expressions via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Stdout carries the protocol, so traces only go to stderr
		logger := contract.NewLogger(cmd.ErrOrStderr(), cfg.Debug)
		return mcp.StartMCPServer(rootCtx, cfg, core.NewService(logger))
	},
}
