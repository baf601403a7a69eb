package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/pipeline"
)

func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show member, relationship and class statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			snap := runner.Current()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap.Summary())
			}
			printStatsSummary(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	return cmd
}

func printStatsSummary(w io.Writer, snap *pipeline.Snapshot) {
	sum := snap.Summary()
	fmt.Fprintln(w, StyleTitle.Render("Graph Statistics"))
	printKeyValue(w, "Total Members", strconv.Itoa(sum.Stats.NodeCount))
	printKeyValue(w, "Connections", strconv.Itoa(sum.Stats.EdgeCount))
	printKeyValue(w, "Big-Little", strconv.Itoa(sum.Stats.KindCount("big-little")))
	printKeyValue(w, "Classmate", strconv.Itoa(sum.Stats.KindCount("classmate")))
	if sum.Warnings > 0 {
		printKeyValue(w, "Skipped", strconv.Itoa(sum.Warnings))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Members by Class"))
	rows := make([][]string, len(sum.Cohorts))
	for i, r := range sum.Cohorts {
		rows[i] = []string{r.Cohort, strconv.Itoa(r.Members), rankCell(snap.Dataset, r.Cohort)}
	}
	fmt.Fprintln(w, renderTable([]string{"Class", "Members", "Weight"}, rows))
}

func (c *CLI) membersCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List all members with their class and degrees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			snap := runner.Current()
			members := snap.Members()
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, members)
			}
			rows := make([][]string, len(members))
			for i, m := range members {
				rows[i] = []string{m.ID, m.Cohort, rankCell(snap.Dataset, m.Cohort), strconv.Itoa(m.Bigs), strconv.Itoa(m.Littles)}
			}
			fmt.Fprintln(w, renderTable([]string{"Name", "Class", "Weight", "Bigs", "Littles"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print members as JSON")
	return cmd
}

// rankCell shows a class weight, or a dash for classes without one.
func rankCell(ds *dataset.Dataset, cohort string) string {
	if r, ok := ds.Rank(cohort); ok {
		return fmtWeight(r)
	}
	return "—"
}
