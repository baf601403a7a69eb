// Package graph builds and holds the immutable member graph.
//
// # Building
//
// [Build] converts a [dataset.Dataset] into a [Graph]. Members become nodes,
// relationships become directed weighted edges tagged with a kind. The
// builder is deliberately asymmetric about bad input:
//
//   - A duplicate member id aborts the build (DUPLICATE_NODE).
//   - A relationship whose endpoint is not a member aborts the build
//     (UNKNOWN_ENDPOINT).
//   - A relationship with a missing, empty or non-numeric weight is dropped
//     and reported as a [Warning]; the rest of the dataset still loads.
//   - A relationship with a zero or negative weight is dropped with a
//     warning, or aborts the build (INVALID_WEIGHT) under [WithStrictWeights].
//
// The weight is checked before the endpoints, so a row that is broken in
// both ways is skipped rather than fatal.
//
// # Duplicate pairs
//
// The graph is a simple directed graph, not a multigraph. When the dataset
// contains several relationships for the same ordered pair, the last one in
// input order wins and the earlier ones are reported as overwritten. The
// edge keeps the position of its first occurrence in [Graph.Edges].
//
// # Immutability
//
// A Graph has no mutating methods. Accessors return copies or read-only
// iterators, so any number of goroutines may query the same Graph. Rebuild
// from a new dataset to change it.
package graph
