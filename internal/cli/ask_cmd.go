package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the cultivation advisor a one-off question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Advisor == nil {
				return fmt.Errorf("advisor is not configured")
			}
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is required")
			}

			ctx := cmd.Context()
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Consulting the advisor...")
			}
			reply := app.Advisor.Ask(ctx, question, app.Store.Ponds(ctx), app.Store.Logs(ctx))
			stop()

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnswer(reply))
			return nil
		},
	}
}
