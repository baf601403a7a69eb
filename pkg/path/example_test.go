package path_test

import (
	"fmt"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/path"
)

func ExampleShortestPath() {
	ds := &dataset.Dataset{
		Members: []dataset.Member{{ID: "Ada"}, {ID: "Ben"}, {ID: "Cy"}},
		Relationships: []dataset.Relationship{
			{From: "Ada", To: "Ben", Weight: dataset.NumberWeight(1), Kind: "big"},
			{From: "Ben", To: "Cy", Weight: dataset.NumberWeight(1), Kind: "big"},
			{From: "Ada", To: "Cy", Weight: dataset.NumberWeight(5), Kind: "friend"},
		},
	}
	g, _, err := graph.Build(ds)
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := path.ShortestPath(g, "Ada", "Cy")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Outcome, res.Nodes, res.TotalWeight)
	// Output: found [Ada Ben Cy] 2
}
