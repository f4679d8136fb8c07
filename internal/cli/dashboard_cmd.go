package cli

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"status"},
		Short:   "Show active ponds, total volume and total harvested",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(app.Store.Dashboard(cmd.Context())))
			return nil
		},
	}
}
