package cli

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON backup into the store",
		Long: `Merge a JSON backup into the store.

Accepts backups written by "spirulina export bundle" and by the browser app.
Records whose ids already exist are skipped. The file is fully validated
before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Store.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Imported %d ponds, %d logs, %d harvests\n",
				formatter.StyleOK.Render("✔"), res.Ponds, res.Logs, res.Harvests)
			if skipped := res.SkippedPonds + res.SkippedLogs + res.SkippedHarvests; skipped > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("  skipped %d records already present", skipped)))
			}
			return nil
		},
	}
}
