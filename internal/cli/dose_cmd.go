package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/dosage"
	"github.com/alexanderramin/spirulina/internal/export"
	"github.com/spf13/cobra"
)

func newDoseCmd(app *App) *cobra.Command {
	var amount, pondRef, pdfPath string

	cmd := &cobra.Command{
		Use:   "dose <new-medium|replenish>",
		Short: "Calculate nutrient amounts for new medium or after a harvest",
		Long: `Calculate nutrient amounts.

new-medium scales the modified Zarrouk recipe by liters of fresh water.
replenish scales the replenishment recipe by grams of harvested wet paste.

Without --amount, new-medium uses the volume of --pond when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mode, err := dosage.ParseMode(args[0])
			if err != nil {
				return err
			}

			input := dosage.DefaultInput[mode]
			var pondName string
			if pondRef != "" {
				p, err := resolvePond(ctx, app, pondRef)
				if err != nil {
					return err
				}
				pondName = p.Name
				if mode == dosage.ModeNewMedium {
					input = p.Volume
				}
			}
			if cmd.Flags().Changed("amount") {
				input = dosage.ParseQuantity(amount)
			}

			res, err := dosage.Calculate(mode, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatDosage(res, pondName))
			fmt.Fprintln(out, formatter.Dim("Presets: "+presetList(mode, res.Recipe.InputUnit)))

			if pdfPath != "" {
				data, err := export.DosagePDF(res, pondName, app.now())
				if err != nil {
					return fmt.Errorf("rendering dosage sheet: %w", err)
				}
				if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", pdfPath, err)
				}
				fmt.Fprintf(out, "%s Dosage sheet written to %s\n", formatter.StyleOK.Render("✔"), pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Liters of water or grams of wet paste")
	cmd.Flags().StringVar(&pondRef, "pond", "", "Pond whose volume to use")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write a printable PDF sheet to this path")

	return cmd
}

func presetList(mode dosage.Mode, unit string) string {
	parts := make([]string, 0, len(dosage.Presets[mode]))
	for _, v := range dosage.Presets[mode] {
		parts = append(parts, formatter.Number(v)+unit)
	}
	return strings.Join(parts, ", ")
}
