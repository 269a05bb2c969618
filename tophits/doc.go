// Package tophits implements a ranked list of top-scoring search hits.
//
// A TopHits container accumulates hits as a search pipeline finds them,
// keeps them sortable by a caller-supplied ranking key (bigger is better),
// merges independently produced lists into one globally ranked list in
// linear time, and flags hits and their domains as reportable against
// externally supplied significance predicates.
//
// The container is a dual representation: an append-only record store plus
// a sorted view of store indices. Appending marks the view stale; Sort
// rebuilds it and is O(1) when the view is already valid, so callers are
// expected to call Sort defensively before reading ranked order.
//
// TopHits is not safe for concurrent use. The intended pattern is
// share-nothing: each worker fills its own container, then a single
// coordinator merges the per-worker lists serially (see package gather).
package tophits
