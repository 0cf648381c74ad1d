// Package graph assembles the entity-relationship graph for a batch of
// study records: deterministic node identity resolution, deduplicated
// primary-edge construction, derived similarity inference between
// organisms, and the fixed render metadata consumed by the front end.
//
// All operations are pure, synchronous computations over data already in
// memory. A graph is built fresh per request; the only process-wide
// state is the read-only style and relation-label tables.
package graph
