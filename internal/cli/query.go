package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/path"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

// pathJSON is the --json shape of a path answer.
type pathJSON struct {
	Outcome     string      `json:"outcome"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Nodes       []string    `json:"nodes,omitempty"`
	Steps       []path.Step `json:"steps,omitempty"`
	TotalWeight float64     `json:"total_weight"`
}

func (c *CLI) pathCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Find the lightest path between two members",
		Long: `Find the lightest directed path from one member to another.

Relationships are followed in their recorded direction and the path with the
smallest total weight wins. Quote names that contain spaces.`,
		Example:           `  kinship path "Neel Gandhi" "Sumesh Rawal"`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeMembers(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := errors.ValidateMemberID(id); err != nil {
					return err
				}
			}
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()
			return runPath(cmd.Context(), cmd.OutOrStdout(), runner, args[0], args[1], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// runPath answers one query. Asking for the same member twice and finding
// no path are reported to the user, not returned as errors.
func runPath(ctx context.Context, w io.Writer, runner *pipeline.Runner, from, to string, asJSON bool) error {
	if from == to && !asJSON {
		printWarning(w, msgSameMember)
		return nil
	}
	res, err := runner.Path(ctx, from, to)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, pathJSON{
			Outcome:     res.Outcome.String(),
			From:        from,
			To:          to,
			Nodes:       res.Nodes,
			Steps:       res.Steps,
			TotalWeight: res.TotalWeight,
		})
	}
	if !res.Found() {
		printError(w, msgNoPath)
		return nil
	}
	printPath(w, res)
	return nil
}

func (c *CLI) reachCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:               "reach FROM",
		Short:             "List every member reachable from a member with its distance",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeMembers(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateMemberID(args[0]); err != nil {
				return err
			}
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			dist, err := runner.Reach(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, dist)
			}
			ids := slices.SortedFunc(maps.Keys(dist), func(a, b string) int {
				return cmp.Or(cmp.Compare(dist[a], dist[b]), cmp.Compare(a, b))
			})
			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				if id == args[0] {
					continue
				}
				rows = append(rows, []string{id, fmtWeight(dist[id])})
			}
			printInfo(w, "%s reaches %s members", StyleHighlight.Render(args[0]), strconv.Itoa(len(rows)))
			if len(rows) > 0 {
				fmt.Fprintln(w, renderTable([]string{"Member", "Distance"}, rows))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print distances as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
