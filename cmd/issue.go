package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/output"
	"github.com/joescharf/issueboard/internal/refdata"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Inspect seeded issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		return issueListRun()
	},
}

var issueListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return issueListRun()
	},
}

var issueShowCmd = &cobra.Command{
	Use:   "show <issue-id>",
	Short: "Show issue details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return issueShowRun(args[0])
	},
}

func init() {
	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueShowCmd)
	rootCmd.AddCommand(issueCmd)
}

func issueListRun() error {
	page, err := newPage(io.Discard)
	if err != nil {
		return err
	}
	return ui.Issues(page.Store().List())
}

func issueShowRun(id string) error {
	page, err := newPage(io.Discard)
	if err != nil {
		return err
	}
	issue, ok := page.Store().Get(strings.ToUpper(id))
	if !ok {
		return fmt.Errorf("issue not found: %s", id)
	}

	fmt.Fprintf(ui.Out, "%s  %s\n", output.Cyan(issue.ID), issue.Subject)
	fmt.Fprintf(ui.Out, "  Status:     %s\n", output.StatusColor(issue.Status))
	fmt.Fprintf(ui.Out, "  Priority:   %s\n", output.PriorityColor(issue.Priority))
	fmt.Fprintf(ui.Out, "  Office:     %s\n", issue.Office)
	fmt.Fprintf(ui.Out, "  Tracker:    %s\n", issue.Tracker)
	fmt.Fprintf(ui.Out, "  Author:     %s\n", issue.Author)
	fmt.Fprintf(ui.Out, "  Assignee:   %s\n", issue.Assignee)
	if staff := refdata.StaffFor(issue.Office); len(staff) > 0 {
		fmt.Fprintf(ui.Out, "  Staff:      %s\n", strings.Join(staff, ", "))
	}
	fmt.Fprintf(ui.Out, "  Created:    %s\n", issue.Created)
	fmt.Fprintf(ui.Out, "  Updated:    %s\n", issue.Updated)
	if issue.Description != "" {
		fmt.Fprintf(ui.Out, "  Desc:       %s\n", issue.Description)
	}
	return nil
}
