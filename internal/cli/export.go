package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/source"
)

func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export OUT.db",
		Short: "Copy the dataset into a SQLite database",
		Long: `Copy the loaded dataset into a SQLite database that can be used as a
dataset location afterwards (kinship --dataset OUT.db ...). Existing rows in
the database are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[0]
			if err := errors.ValidatePath(out); err != nil {
				return err
			}
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			snap := runner.Current()
			if err := source.SaveSQLite(cmd.Context(), out, snap.Dataset); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Exported %d members, %d relationships", len(snap.Dataset.Members), len(snap.Dataset.Relationships))
			printFile(w, out)
			return nil
		},
	}
}
