package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/output"
	"github.com/joescharf/issueboard/internal/refdata"
)

var triageCmd = &cobra.Command{
	Use:   "triage <issue-id>",
	Short: "Ask the LLM which department should own an issue",
	Long: `Ask Anthropic's API which department should handle an issue.

Requires anthropic.api_key in the config file, ISSUEBOARD_ANTHROPIC_API_KEY,
or ANTHROPIC_API_KEY. The board is not changed; reassign from the detail
view if you agree.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return triageRun(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(triageCmd)
}

func triageRun(ctx context.Context, id string) error {
	page, err := newPage(io.Discard)
	if err != nil {
		return err
	}
	issue, ok := page.Store().Get(strings.ToUpper(id))
	if !ok {
		return fmt.Errorf("issue not found: %s", id)
	}

	client := newLLMClient()
	if client == nil {
		return fmt.Errorf("no Anthropic API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	ui.VerboseLog("Requesting triage for %s", issue.ID)
	s, err := client.Triage(ctx, issue, refdata.Departments())
	if err != nil {
		return fmt.Errorf("triage %s: %w", issue.ID, err)
	}

	if s.Department == issue.Office {
		ui.Success("%s is already with the right department: %s", issue.ID, output.Cyan(s.Department))
	} else {
		ui.Info("%s: %s -> %s", issue.ID, issue.Office, output.Cyan(s.Department))
	}
	if s.Reason != "" {
		fmt.Fprintf(ui.Out, "  %s\n", s.Reason)
	}
	return nil
}
