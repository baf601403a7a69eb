// Package dataset defines the raw input model consumed by the graph builder.
//
// A [Dataset] is a list of members (name and cohort), a list of directed
// relationships (source, target, weight, kind), and an optional side channel
// of cohort ranks used only for display ordering.
//
// # Weights
//
// Relationship weights arrive loosely typed: a JSON number, a numeric string,
// an empty string, null, a bare NaN written by a dataframe export, or nothing
// at all. [Weight] keeps the raw value and defers interpretation to
// [Weight.Float], so the builder can decide whether a relationship is usable
// without the decoder ever failing on a single bad row.
//
// # Formats
//
// [Decode] reads JSON (via goccy/go-json) and YAML (via yaml.v3). The JSON
// decoder tolerates the non-standard NaN and Infinity literals that Python's
// json module emits by rewriting them to null before decoding.
package dataset
