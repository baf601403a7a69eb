// Package pipeline ties the kinship packages into the load → build → query
// → layout → render flow used by the CLI and the HTTP server.
//
// A [Runner] owns the current [Snapshot]: the loaded dataset, the graph
// built from it, its build warnings and statistics. [Runner.Reload] builds
// a new snapshot and swaps it in atomically, so queries that already hold
// the old one finish against it. Layouts and renders are cached by graph
// content hash and coalesced so concurrent identical requests compute once.
//
// # Usage
//
//	src, _ := source.Open("complete_graph_data.json")
//	runner := pipeline.NewRunner(src, nil, nil, logger)
//	if _, err := runner.Reload(ctx); err != nil {
//	    return err
//	}
//	res, err := runner.Path(ctx, "Ada Lovelace", "Alan Turing")
//
//	svg, err := runner.Render(ctx, pipeline.RenderOptions{From: "Ada Lovelace", To: "Alan Turing"})
package pipeline

import (
	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/render"
	"github.com/matzehuels/kinship/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default layout seed.
	DefaultSeed = layout.DefaultSeed

	// DefaultEngine is the Graphviz engine used for rendering. neato honours
	// the pinned positions produced by the layout provider.
	DefaultEngine = "neato"

	// DefaultFormat is the default output format.
	DefaultFormat = render.FormatSVG

	// DefaultPNGScale is the rasterisation scale for PNG output.
	DefaultPNGScale = 2.0
)

// =============================================================================
// RenderOptions - Render Configuration
// =============================================================================

// RenderOptions configures Runner.Render.
type RenderOptions struct {
	// From and To select a path to highlight. Both empty renders the plain
	// graph; setting only one is an error.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	Format render.Format `json:"format,omitempty"`
	Engine string        `json:"engine,omitempty"`
	Seed   uint64        `json:"seed,omitempty"`
}

// Highlighted reports whether a path highlight was requested.
func (o RenderOptions) Highlighted() bool {
	return o.From != "" || o.To != ""
}

// ValidateAndSetDefaults fills zero values and validates the rest.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if _, err := nodelink.ParseEngine(o.Engine); err != nil {
		return err
	}
	if o.Highlighted() && (o.From == "" || o.To == "") {
		return errors.New(errors.ErrCodeInvalidQuery, "path highlight needs both from and to")
	}
	return nil
}
