package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joescharf/issueboard/internal/refdata"
)

var departmentsCmd = &cobra.Command{
	Use:     "departments",
	Aliases: []string{"depts"},
	Short:   "List the departments issues can be reassigned to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return departmentsRun()
	},
}

func init() {
	rootCmd.AddCommand(departmentsCmd)
}

func departmentsRun() error {
	table := ui.Table([]string{"Department", "Staff"})
	for _, d := range refdata.Departments() {
		staff := "-"
		if names := refdata.StaffFor(d); len(names) > 0 {
			staff = strings.Join(names, ", ")
		}
		if err := table.Append([]string{d, staff}); err != nil {
			return err
		}
	}
	return table.Render()
}
