package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/errors"
)

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute member positions and write them as JSON",
		Long: `Compute 2D positions for every member with the configured layout provider.

The same graph and seed always produce the same positions. Results are cached
by graph content, so repeated runs are instant until the dataset changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cfg, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("seed") {
				seed = cfg.Layout.Seed
			}
			sw := startStopwatch(c.Logger)
			doc, hit, err := runner.LayoutWithCacheInfo(cmd.Context(), seed)
			if err != nil {
				return err
			}
			c.Logger.Debug("layout", "provider", doc.Provider, "cached", hit)

			w := cmd.OutOrStdout()
			if output == "" {
				data, err := doc.Marshal()
				if err != nil {
					return err
				}
				_, err = w.Write(append(data, '\n'))
				return err
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := doc.WriteFile(output); err != nil {
				return err
			}
			sw.done("Computed layout", "provider", doc.Provider, "members", len(doc.Nodes))
			printSuccess(w, "Layout written")
			printFile(w, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed (default from config)")
	return cmd
}
