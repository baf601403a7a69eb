// Package source loads datasets from where they live.
//
// Every backend implements [Source]:
//
//   - [File]: a JSON or YAML file on disk
//   - [HTTP]: a JSON or YAML document behind a URL, with retry and an
//     optional last-known-good fallback
//   - [SQLite]: tables members and relationships in a SQLite database
//   - [Mongo]: collections members and relationships in MongoDB
//   - [Neo4j]: (:Member) nodes joined by [:RELATED] relationships
//
// All backends hand raw weights to the dataset model untouched, so the
// graph builder applies the same weight rules whatever the origin. [Open]
// picks a backend from a location string, and [Watch] reports changes to a
// file-backed dataset.
package source
