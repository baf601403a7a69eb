// Package path answers shortest-path queries over a member graph.
//
// [ShortestPath] runs Dijkstra's algorithm from the source member and stops
// as soon as the target is settled. Edge weights are positive by
// construction (the graph builder drops or rejects anything else), so no
// negative-weight handling is needed.
//
// # Outcomes
//
// A query has three possible outcomes:
//
//   - [Found]: the result carries the member sequence, the total weight and
//     one [Step] per traversed relationship.
//   - [NoPath]: both members exist but no directed route connects them.
//     This is a normal result, not an error.
//   - An error coded INVALID_QUERY: the source or target is unknown, or they
//     are the same member.
//
// # Ties
//
// Among several minimum-weight paths the engine returns the one whose
// frontier entries were discovered first. Heap entries carry a discovery
// sequence number that breaks distance ties, so results are repeatable for
// a given graph but not lexicographically canonical.
//
// Complexity is O((V + E) log V) with a binary heap and lazy decrease-key.
package path
