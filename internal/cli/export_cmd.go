package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/export"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as a JSON backup or a spreadsheet",
	}

	cmd.AddCommand(
		newExportBundleCmd(app),
		newExportHarvestsCmd(app),
	)

	return cmd
}

func newExportBundleCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Write every pond, log and harvest as a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle := app.Store.Export(cmd.Context())
			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding backup: %w", err)
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Backup written to %s (%d ponds, %d logs, %d harvests)\n",
				formatter.StyleOK.Render("✔"), out, len(bundle.Ponds), len(bundle.Logs), len(bundle.Harvests))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newExportHarvestsCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "harvests",
		Short: "Write the harvest ledger to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			view := app.Store.HarvestLedger(ctx, timeseries.PagerAt(len(app.Store.Harvests(ctx))))
			data, err := export.HarvestsXLSX(view)
			if err != nil {
				return fmt.Errorf("building workbook: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d harvests written to %s\n", formatter.StyleOK.Render("✔"), view.Count, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "spirulina-harvests.xlsx", "Output workbook")

	return cmd
}
