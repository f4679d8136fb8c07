package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/spf13/cobra"
)

func newPondCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pond",
		Short: "Manage ponds",
	}

	cmd.AddCommand(
		newPondAddCmd(app),
		newPondListCmd(app),
		newPondShowCmd(app),
		newPondRemoveCmd(app),
	)

	return cmd
}

func newPondAddCmd(app *App) *cobra.Command {
	var (
		name, strain string
		volume       float64
		status       statusFlag
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new pond",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := domain.PondDraft{Name: name, Volume: volume, Status: status.status, Strain: strain}

			if strings.TrimSpace(name) == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				vals := pondFormValues{status: domain.PondActive}
				if err := pondForm(&vals).Run(); err != nil {
					return err
				}
				draft = domain.PondDraft{
					Name:   vals.name,
					Volume: parseFormFloat(vals.volume),
					Status: vals.status,
					Strain: vals.strain,
				}
			}

			p, err := app.Store.AddPond(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPondCreated(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pond name")
	cmd.Flags().Float64Var(&volume, "volume", 0, "Culture volume in liters")
	cmd.Flags().Var(&status, "status", "Active, Maintenance or Inactive (default Active)")
	cmd.Flags().StringVar(&strain, "strain", "", "Strain (default "+domain.DefaultStrain+")")

	return cmd
}

func newPondListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ponds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPondList(app.Store.Ponds(ctx), app.Store.Logs(ctx)))
			return nil
		},
	}
}

func newPondShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pond>",
		Short: "Show a pond with its latest reading and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolvePond(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Store.PondDetail(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPondDetail(view))
			return nil
		},
	}
}

func newPondRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <pond>",
		Aliases: []string{"rm"},
		Short:   "Remove a pond (its logs and harvests are kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolvePond(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to remove pond %q without --yes", p.Name)
				}
				confirmed := false
				if err := wizardConfirm(fmt.Sprintf("Remove pond %s?", p.Name), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			logs, harvests := app.Store.Orphans(ctx, p.ID)
			removed, err := app.Store.DeletePond(ctx, p.ID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("pond %q was already removed", p.Name)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPondRemoved(p.Name, logs, harvests))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
