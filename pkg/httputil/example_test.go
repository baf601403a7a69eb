package httputil_test

import (
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/kinship/pkg/httputil"
)

func ExampleCache() {
	dir, _ := os.MkdirTemp("", "kinship-example")
	defer os.RemoveAll(dir)

	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	datasets := cache.Namespace("dataset:")

	if err := datasets.Set("https://example.com/graph.json", map[string]int{"members": 3}); err != nil {
		fmt.Println("Error:", err)
		return
	}

	var result map[string]int
	ok, err := datasets.Get("https://example.com/graph.json", &result)
	fmt.Println(ok, err, result["members"])
	// Output:
	// true <nil> 3
}
