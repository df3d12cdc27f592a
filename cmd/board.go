package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/board"
	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/output"
	"github.com/joescharf/issueboard/internal/sessions"
)

type boardOptions struct {
	Search     string
	Department string
	Priority   string
}

var boardOpts boardOptions

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the seeded board, one table per column",
	Long: `Print the board as it looks when a session starts.

--search matches id, subject and office (case-insensitive); --department
matches the office exactly; --priority is High, Normal or Low.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return boardRun(boardOpts)
	},
}

func init() {
	boardCmd.Flags().StringVarP(&boardOpts.Search, "search", "s", "", "Search text")
	boardCmd.Flags().StringVarP(&boardOpts.Department, "department", "d", "", "Only this office")
	boardCmd.Flags().StringVarP(&boardOpts.Priority, "priority", "p", "", "Only this priority")
	rootCmd.AddCommand(boardCmd)
}

// newPage creates a board page from the configured seed.
func newPage(logOut io.Writer) (*sessions.Page, error) {
	seed, err := getSeed()
	if err != nil {
		return nil, err
	}
	return sessions.NewPage(seed, newLogger(logOut)), nil
}

func boardRun(opts boardOptions) error {
	if opts.Priority != "" && opts.Priority != board.AllPriorities {
		p, err := models.ParsePriority(opts.Priority)
		if err != nil {
			return err
		}
		opts.Priority = p.String()
	}

	page, err := newPage(io.Discard)
	if err != nil {
		return err
	}
	page.SetFilter(board.Filter{
		Search:     opts.Search,
		Department: opts.Department,
		Priority:   opts.Priority,
	})

	snap := page.Snapshot()
	for i, col := range snap.Columns {
		if i > 0 {
			fmt.Fprintln(ui.Out)
		}
		fmt.Fprintf(ui.Out, "%s (%d)\n", output.Cyan(col.Title), col.Count)
		if col.Count == 0 {
			continue
		}
		if err := ui.Issues(col.Issues); err != nil {
			return err
		}
	}
	return nil
}
