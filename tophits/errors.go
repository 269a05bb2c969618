package tophits

import "errors"

var (
	// ErrConsumed is returned when operating on a container whose hits have
	// been moved into another container by Merge. A consumed container is
	// only a valid target for Close.
	ErrConsumed = errors.New("tophits: container consumed by merge")

	// ErrSelfMerge is returned when a container is merged into itself.
	ErrSelfMerge = errors.New("tophits: cannot merge container into itself")

	// ErrTooManyHits is returned when an append or merge would push the
	// record count past the sorted view's index width.
	ErrTooManyHits = errors.New("tophits: hit count exceeds index capacity")
)
