// Package gather runs share-nothing hit-list producers and combines their
// results.
//
// The hit-list container is not safe for concurrent use, so the supported
// concurrency pattern is share-nothing, merge-to-combine: every worker
// fills a private list with no cross-list interaction, and a single
// coordinating goroutine merges the per-worker lists serially afterward.
// This package packages that pattern, plus the distributed variant where
// workers deposit encoded lists in a blob store for a remote coordinator.
package gather

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/althonos/hmmer/tophits"
)

// ProduceFunc fills the worker's private hit list. The list is owned by the
// worker for the duration of the call; the coordinator takes it afterward.
type ProduceFunc func(ctx context.Context, worker int, dst *tophits.TopHits) error

// Options configures Gather.
type Options struct {
	// Workers is the number of producers to run. Must be >= 1.
	Workers int

	// MaxParallel bounds how many producers run at once.
	// Zero means no bound beyond Workers.
	MaxParallel int

	// Logger receives progress events. Nil discards them.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Gather runs opts.Workers producers, each filling a private hit list, and
// fold-merges the results into one sorted list. If any producer fails, the
// rest are canceled and the first error is returned; partially produced
// lists are discarded.
func Gather(ctx context.Context, opts Options, produce ProduceFunc) (*tophits.TopHits, error) {
	log := opts.logger()

	lists := make([]*tophits.TopHits, opts.Workers)
	var sem *semaphore.Weighted
	if opts.MaxParallel > 0 {
		sem = semaphore.NewWeighted(int64(opts.MaxParallel))
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}

			th := tophits.New()
			if err := produce(gctx, w, th); err != nil {
				th.Close()
				return err
			}
			lists[w] = th
			log.DebugContext(gctx, "producer finished", "worker", w, "hits", th.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, th := range lists {
			th.Close()
		}
		return nil, err
	}

	merged, err := MergeAll(lists...)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "gather complete",
		"workers", opts.Workers,
		"hits", merged.Len(),
	)
	return merged, nil
}

// MergeAll fold-merges the given lists into a fresh sorted container,
// consuming every input. It must be called from a single goroutine.
func MergeAll(lists ...*tophits.TopHits) (*tophits.TopHits, error) {
	merged := tophits.New()
	for _, th := range lists {
		if th == nil {
			continue
		}
		if err := merged.Merge(th); err != nil {
			merged.Close()
			return nil, err
		}
		th.Close()
	}
	merged.Sort()
	return merged, nil
}
