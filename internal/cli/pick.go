package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose two members interactively and show the path between them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			model := NewMemberPickerModel(runner.Current().Members())
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
				tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}

			picked := final.(MemberPickerModel)
			w := cmd.OutOrStdout()
			if picked.Aborted || !picked.Done() {
				printInfo(w, "No members selected")
				return nil
			}
			return runPath(cmd.Context(), w, runner, picked.From, picked.To, false)
		},
	}
}
