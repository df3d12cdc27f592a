package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

The server owns one board seeded like a new browser session; changes
last until the process exits. Configure your MCP client with:

  {
    "mcpServers": {
      "issueboard": { "command": "issueboard", "args": ["mcp"] }
    }
  }

Available tools: board_list_issues, board_show_issue, board_move_issue,
board_drag_issue, board_assign_issue, board_reassign_issue, board_departments`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpRun(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func mcpRun(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, shutdownSignals()...)
	defer stop()

	// stdout carries the protocol; logs go to stderr.
	page, err := newPage(os.Stderr)
	if err != nil {
		return err
	}
	return mcp.NewServer(page, buildVersion).ServeStdio(ctx)
}
