package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/path"
	"github.com/matzehuels/kinship/pkg/render/nodelink"
)

func ExampleToDOT() {
	g, _, _ := graph.Build(&dataset.Dataset{
		Members: []dataset.Member{{ID: "Ada", Cohort: "Mu"}, {ID: "Ben", Cohort: "Nu"}},
		Relationships: []dataset.Relationship{
			{From: "Ada", To: "Ben", Weight: dataset.NumberWeight(1), Kind: "big-little"},
		},
	})
	res, _ := path.ShortestPath(g, "Ada", "Ben")

	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: &res, Source: "Ada", Target: "Ben"})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "Ada" -> "Ben" [color="red", penwidth=3, tooltip="Ada → Ben\nWeight: 1\nType: big-little"];
}
