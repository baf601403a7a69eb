// Package pkg provides the core libraries for kinship, a social-graph
// explorer over a club's member roster.
//
// # Overview
//
// A dataset of members and weighted relationships is loaded from a source,
// built into an immutable graph, and queried for shortest paths,
// reachability and roster statistics. The packages are organized by layer:
//
//  1. [dataset], [graph] - Data model and graph construction
//  2. [path], [stats], [layout] - Queries and node-link layout
//  3. [render] - DOT, SVG, PDF and PNG output
//  4. [source], [cache], [httputil] - Infrastructure
//  5. [pipeline], [server], [config] - Orchestration and the HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	File / HTTP / SQLite / MongoDB / Neo4j
//	         ↓
//	    [source] package (fetch and decode a dataset)
//	         ↓
//	    [graph] package (validate, build, hash)
//	         ↓
//	    [path] / [stats] / [layout] packages
//	         ↓
//	    [render] package (DOT → SVG/PDF/PNG)
//
// # Quick Start
//
//	src := &source.File{Path: "complete_graph_data.json"}
//	runner := pipeline.NewRunner(src, cache.NewNullCache(), nil, nil)
//	if err := runner.Reload(ctx); err != nil {
//	    return err
//	}
//	res, err := runner.Path(ctx, "Ada Lovelace", "Grace Hopper")
//
// [dataset]: github.com/matzehuels/kinship/pkg/dataset
// [graph]: github.com/matzehuels/kinship/pkg/graph
// [path]: github.com/matzehuels/kinship/pkg/path
// [stats]: github.com/matzehuels/kinship/pkg/stats
// [layout]: github.com/matzehuels/kinship/pkg/layout
// [render]: github.com/matzehuels/kinship/pkg/render
// [source]: github.com/matzehuels/kinship/pkg/source
// [cache]: github.com/matzehuels/kinship/pkg/cache
// [httputil]: github.com/matzehuels/kinship/pkg/httputil
// [pipeline]: github.com/matzehuels/kinship/pkg/pipeline
// [server]: github.com/matzehuels/kinship/pkg/server
// [config]: github.com/matzehuels/kinship/pkg/config
package pkg
