package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/pipeline"
	"github.com/matzehuels/kinship/pkg/render"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		from    string
		to      string
		engine  string
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the family tree as a node-link diagram",
		Long: `Draw the family tree with members coloured by class.

With --from and --to the lightest path between the two members is drawn in
red and its members enlarged. The format follows the output extension unless
--format is given; several comma-separated formats are rendered in parallel
next to each other (family.svg, family.png, ...).

PDF and PNG output need rsvg-convert on PATH.`,
		Example: `  kinship render -o family.svg
  kinship render --from "Neel Gandhi" --to "Sumesh Rawal" -o path.svg
  kinship render -o family --format svg,pdf,png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := renderTargets(output, formats)
			if err != nil {
				return err
			}
			runner, cfg, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("seed") {
				seed = cfg.Layout.Seed
			}
			if engine == "" {
				engine = cfg.Render.Engine
			}

			w := cmd.OutOrStdout()
			spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering...")
			spin.Start()

			g, ctx := errgroup.WithContext(cmd.Context())
			for format, file := range targets {
				g.Go(func() error {
					data, err := runner.Render(ctx, pipeline.RenderOptions{
						From:   from,
						To:     to,
						Format: format,
						Engine: engine,
						Seed:   seed,
					})
					if err != nil {
						return err
					}
					return os.WriteFile(file, data, 0o644)
				})
			}
			err = g.Wait()
			spin.Stop()
			if err != nil {
				return err
			}

			printSuccess(w, "Rendered %d file(s)", len(targets))
			for _, file := range sortedValues(targets) {
				printFile(w, file)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "kinship.svg", "output file")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated formats: svg, pdf, png, dot (default from output extension)")
	cmd.Flags().StringVar(&from, "from", "", "highlight the path starting at this member")
	cmd.Flags().StringVar(&to, "to", "", "highlight the path ending at this member")
	cmd.Flags().StringVar(&engine, "engine", "", "graphviz engine (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("from", c.completeMembers(-1))
	_ = cmd.RegisterFlagCompletionFunc("to", c.completeMembers(-1))
	return cmd
}

// renderTargets maps each requested format to its output file.
func renderTargets(output, formats string) (map[render.Format]string, error) {
	if err := errors.ValidatePath(output); err != nil {
		return nil, err
	}
	if formats == "" {
		return map[render.Format]string{render.FormatFromPath(output): output}, nil
	}

	parts := strings.Split(formats, ",")
	targets := make(map[render.Format]string, len(parts))
	base := output
	if len(parts) > 1 {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, p := range parts {
		f, err := render.ParseFormat(p)
		if err != nil {
			return nil, err
		}
		if len(parts) > 1 {
			targets[f] = base + "." + string(f)
		} else {
			targets[f] = output
		}
	}
	return targets, nil
}

func sortedValues(m map[render.Format]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
