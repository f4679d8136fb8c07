package cli

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/advisor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the cultivation advisor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Advisor == nil {
				return fmt.Errorf("advisor is not configured")
			}
			if !app.interactive() {
				return fmt.Errorf("chat needs an interactive terminal, use `spirulina ask`")
			}
			ctx := cmd.Context()
			view := newChatView(ctx, app.Store, advisor.NewConversation(app.Advisor))
			_, err := tea.NewProgram(view, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()), tea.WithInput(cmd.InOrStdin())).Run()
			return err
		},
	}
}
