package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and review water-quality readings",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogListCmd(app),
	)

	return cmd
}

// pickPond resolves args[0] or, on a terminal, asks for a pond.
func pickPond(ctx context.Context, app *App, args []string) (domain.Pond, error) {
	if len(args) > 0 {
		return resolvePond(ctx, app, args[0])
	}
	if !app.interactive() {
		return domain.Pond{}, fmt.Errorf("pond is required")
	}
	var id string
	form := wizardSelectPond(ctx, app, &id)
	if form == nil {
		return domain.Pond{}, fmt.Errorf("no ponds yet, add one with `spirulina pond add`")
	}
	if err := form.Run(); err != nil {
		return domain.Pond{}, err
	}
	return resolvePond(ctx, app, id)
}

func newLogAddCmd(app *App) *cobra.Command {
	var (
		ph, temperature, od, salinity, medium float64
		notes                                 string
	)

	cmd := &cobra.Command{
		Use:   "add [pond]",
		Short: "Record a parameter reading for a pond",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pond, err := pickPond(ctx, app, args)
			if err != nil {
				return err
			}

			draft := domain.LogDraft{
				PondID:         pond.ID,
				PH:             ph,
				Temperature:    temperature,
				OpticalDensity: od,
				Salinity:       salinity,
				AddedMedium:    medium,
				Notes:          notes,
			}

			if !anyChanged(cmd.Flags(), "ph", "temp", "od", "salinity", "medium", "notes") {
				if !app.interactive() {
					return fmt.Errorf("at least one of --ph, --temp, --od is required")
				}
				var vals logFormValues
				if err := logForm(&vals).Run(); err != nil {
					return err
				}
				draft.PH = parseFormFloat(vals.ph)
				draft.Temperature = parseFormFloat(vals.temperature)
				draft.OpticalDensity = parseFormFloat(vals.od)
				draft.Salinity = parseFormFloat(vals.salinity)
				draft.AddedMedium = parseFormFloat(vals.medium)
				draft.Notes = vals.notes
			}

			l, err := app.Store.AddLog(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogCreated(pond.Name, l))
			if ph := l.PH; ph > timeseries.PHHigh || ph < timeseries.PHLow {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleAlert.Render("  pH is out of the healthy range."))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&ph, "ph", 0, "pH")
	cmd.Flags().Float64Var(&temperature, "temp", 0, "Temperature in °C")
	cmd.Flags().Float64Var(&od, "od", 0, "Optical density")
	cmd.Flags().Float64Var(&salinity, "salinity", 0, "Salinity")
	cmd.Flags().Float64Var(&medium, "medium", 0, "Medium added in liters")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list <pond>",
		Aliases: []string{"ls"},
		Short:   "Show a pond's readings, newest first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pond, err := resolvePond(ctx, app, args[0])
			if err != nil {
				return err
			}
			n := timeseries.HistoryWindow
			if all {
				n = -1
			}
			logs := timeseries.RecentHistory(app.Store.Logs(ctx), pond.ID, n)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLogList(pond.Name, logs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every reading instead of the latest five")

	return cmd
}
