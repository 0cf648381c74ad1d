// Package types defines the core data model shared across the NULLspace
// backend: normalized study records, the entity graph (nodes, edges,
// layout and style metadata), scored search results, and platform stats.
//
// Everything in this package is request-scoped plain data. Studies are
// immutable once normalized; graphs are built fresh for each request and
// discarded after the response is produced.
package types
