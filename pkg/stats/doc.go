// Package stats derives aggregate statistics from a built graph.
//
// [Summarize] is the only computation: it walks the graph once and returns a
// [Snapshot] with node and edge counts, per-kind and per-cohort counts and a
// degree table. A snapshot is a plain value; nothing here caches or persists
// it, and the graph is never modified, so Summarize may run concurrently
// against the same graph.
//
// The aggregates are unordered maps. Callers wanting a display order pass an
// external ranking (usually the dataset's class weights) to [CohortTable] or
// [MemberTable]. Cohorts missing from the ranking sort last.
package stats
