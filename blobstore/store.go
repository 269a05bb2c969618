// Package blobstore provides depots for encoded hit lists.
//
// In a distributed search, each worker encodes its hit list (package codec)
// and deposits it under a shared prefix; the coordinator lists the prefix,
// fetches every blob, and merges. Hit-list blobs are written once and read
// whole, so the contract is whole-blob Put/Get rather than random access.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// Store is a depot for immutable blobs.
// Implementations must be safe for concurrent use: workers deposit in
// parallel while a coordinator lists and fetches.
type Store interface {
	// Put writes a blob atomically under the given name.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the full content of a blob, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
