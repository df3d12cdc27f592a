package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the board in the terminal",
	Long: `Run an interactive board in the terminal.

Press space to pick up a card, move to another column and press space
again to drop it there; esc drops it on nothing. Enter opens the detail
panel. Changes last until the program exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiRun()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func tuiRun() error {
	// Logs would corrupt the alternate screen; keep them only when asked.
	var logOut io.Writer = io.Discard
	if verbose {
		f, err := os.OpenFile(serveLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer func() { _ = f.Close() }()
			logOut = f
		}
	}

	page, err := newPage(logOut)
	if err != nil {
		return err
	}
	return tui.Start(page)
}
