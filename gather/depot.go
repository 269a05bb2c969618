package gather

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/althonos/hmmer/blobstore"
	"github.com/althonos/hmmer/codec"
	"github.com/althonos/hmmer/tophits"
)

// Depot ties a blob store and codec settings together for distributed
// gathers: workers Publish their lists under a run prefix, the coordinator
// Collects and merges them.
type Depot struct {
	// Store is the shared blob store. Required.
	Store blobstore.Store

	// Encode configures list encoding for Publish. Optional.
	Encode []codec.EncodeOption

	// Logger receives progress events. Nil discards them.
	Logger *slog.Logger
}

func (d *Depot) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// WorkerBlobName returns the conventional blob name for a worker's list.
func WorkerBlobName(prefix string, worker int) string {
	return fmt.Sprintf("%sworker-%05d", prefix, worker)
}

// Publish encodes a hit list and deposits it under the given name.
// The list itself is untouched; callers usually Close it afterward.
func (d *Depot) Publish(ctx context.Context, name string, th *tophits.TopHits) error {
	data, err := codec.EncodeList(th, d.Encode...)
	if err != nil {
		return fmt.Errorf("gather: encode %s: %w", name, err)
	}
	if err := d.Store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("gather: publish %s: %w", name, err)
	}
	d.logger().DebugContext(ctx, "list published",
		"name", name,
		"hits", th.Len(),
		"bytes", len(data),
	)
	return nil
}

// Collect fetches every list under the prefix, decodes it, and fold-merges
// the lot into one sorted container. Collecting an empty prefix yields an
// empty list, not an error.
func (d *Depot) Collect(ctx context.Context, prefix string) (*tophits.TopHits, error) {
	names, err := d.Store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("gather: list %s: %w", prefix, err)
	}

	merged := tophits.New()
	for _, name := range names {
		data, err := d.Store.Get(ctx, name)
		if err != nil {
			merged.Close()
			return nil, fmt.Errorf("gather: fetch %s: %w", name, err)
		}
		th, err := codec.DecodeList(data)
		if err != nil {
			merged.Close()
			return nil, fmt.Errorf("gather: decode %s: %w", name, err)
		}
		if err := merged.Merge(th); err != nil {
			th.Close()
			merged.Close()
			return nil, err
		}
		th.Close()
	}
	merged.Sort()

	d.logger().InfoContext(ctx, "lists collected",
		"prefix", prefix,
		"lists", len(names),
		"hits", merged.Len(),
	)
	return merged, nil
}
