// Package layout assigns 2D positions to graph members.
//
// A [Provider] maps every member of a graph to a [Point], deterministically
// for a fixed seed. Two providers ship with the package:
//
//   - [Spring]: a force-directed layout built on gonum's Eades optimiser,
//     run over the undirected shape of the graph. This is the default.
//   - [Circle]: members evenly spaced on the unit circle in sorted-id order.
//     Useful for tiny graphs and tests.
//
// [Func] adapts a plain function. All providers return coordinates
// normalised into [-1, 1] on both axes, so renderers can scale them without
// knowing which provider produced them.
//
// Positions are serialised through [Document], the on-disk and cache format.
package layout
