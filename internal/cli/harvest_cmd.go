package cli

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newHarvestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Record harvests and review the ledger",
	}

	cmd.AddCommand(
		newHarvestAddCmd(app),
		newHarvestListCmd(app),
		newHarvestBrowseCmd(app),
	)

	return cmd
}

func newHarvestAddCmd(app *App) *cobra.Command {
	var (
		wet   float64
		dry   optionalFloatFlag
		batch optionalStringFlag
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add [pond]",
		Short: "Record a harvest of wet paste",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pond, err := pickPond(ctx, app, args)
			if err != nil {
				return err
			}

			draft := domain.HarvestDraft{
				PondID:    pond.ID,
				WetWeight: wet,
				DryWeight: dry.v,
				BatchID:   batch.v,
				Notes:     notes,
			}

			if !cmd.Flags().Changed("wet") {
				if !app.interactive() {
					return fmt.Errorf("--wet is required")
				}
				var vals harvestFormValues
				if err := harvestForm(&vals).Run(); err != nil {
					return err
				}
				draft.WetWeight = parseFormFloat(vals.wet)
				draft.DryWeight = optionalFormFloat(vals.dry)
				draft.BatchID = domain.Some(vals.batch)
				draft.Notes = vals.notes
			}

			h, err := app.Store.AddHarvest(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHarvestCreated(pond.Name, h))
			return nil
		},
	}

	cmd.Flags().Float64Var(&wet, "wet", 0, "Wet paste weight in grams")
	cmd.Flags().Var(&dry, "dry", "Dry weight in grams")
	cmd.Flags().Var(&batch, "batch", "Batch identifier")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	return cmd
}

func newHarvestListCmd(app *App) *cobra.Command {
	var (
		visible int
		all     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the harvest ledger, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			pager := timeseries.PagerAt(visible)
			if all {
				pager = timeseries.PagerAt(len(app.Store.Harvests(cmd.Context())))
			}
			view := app.Store.HarvestLedger(cmd.Context(), pager)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLedger(view))
			return nil
		},
	}

	cmd.Flags().IntVarP(&visible, "show", "n", timeseries.PageSize, "Number of harvests to show")
	cmd.Flags().BoolVar(&all, "all", false, "Show every harvest")

	return cmd
}

func newHarvestBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through the harvest ledger interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !app.interactive() {
				view := app.Store.HarvestLedger(ctx, nil)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLedger(view))
				return nil
			}

			model := newHarvestBrowser(ctx, app.Store)
			p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()), tea.WithInput(cmd.InOrStdin()))
			unsubscribe := app.Store.Subscribe(ledgerChanges(p.Send))
			defer unsubscribe()
			stopWatching := app.watchExternal(ctx)
			defer stopWatching()

			_, err := p.Run()
			return err
		},
	}
}
