package gather

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/althonos/hmmer/blobstore"
	"github.com/althonos/hmmer/codec"
	"github.com/althonos/hmmer/testutil"
	"github.com/althonos/hmmer/tophits"
)

func requireDescending(t *testing.T, th *tophits.TopHits) {
	t.Helper()
	for i := 1; i < th.Len(); i++ {
		require.LessOrEqual(t, th.At(i).SortKey, th.At(i-1).SortKey)
	}
}

func TestGather_GlobalOrder(t *testing.T) {
	const workers, perWorker = 8, 250

	rng := testutil.NewRNG(42)
	merged, err := Gather(context.Background(), Options{Workers: workers},
		func(_ context.Context, worker int, dst *tophits.TopHits) error {
			return testutil.FillRandomHits(rng, dst, perWorker, fmt.Sprintf("w%d", worker))
		})
	require.NoError(t, err)
	defer merged.Close()

	require.Equal(t, workers*perWorker, merged.Len())
	requireDescending(t, merged)
}

func TestGather_MaxParallel(t *testing.T) {
	var inFlight, peak atomic.Int32

	_, err := Gather(context.Background(), Options{Workers: 16, MaxParallel: 3},
		func(_ context.Context, _ int, dst *tophits.TopHits) error {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			defer inFlight.Add(-1)
			return dst.Add("x", "", "", 1, 0, 0)
		})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int32(3))
}

func TestGather_ProducerFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := Gather(context.Background(), Options{Workers: 4},
		func(_ context.Context, worker int, dst *tophits.TopHits) error {
			if worker == 2 {
				return boom
			}
			return dst.Add("ok", "", "", 1, 0, 0)
		})
	require.ErrorIs(t, err, boom)
}

func TestMergeAll_SkipsNil(t *testing.T) {
	a := tophits.New()
	require.NoError(t, a.Add("a", "", "", 5, 0, 0))
	b := tophits.New()
	require.NoError(t, b.Add("b", "", "", 9, 0, 0))

	merged, err := MergeAll(a, nil, b)
	require.NoError(t, err)
	defer merged.Close()

	require.Equal(t, 2, merged.Len())
	require.Equal(t, "b", merged.At(0).Name)
}

func TestDepot_PublishCollect(t *testing.T) {
	ctx := context.Background()
	depot := &Depot{
		Store:  blobstore.NewMemoryStore(),
		Encode: []codec.EncodeOption{codec.WithCompression(codec.CompressionZstd)},
	}

	rng := testutil.NewRNG(7)
	const workers, perWorker = 5, 100
	want := 0
	for w := 0; w < workers; w++ {
		th := tophits.New()
		require.NoError(t, testutil.FillRandomHits(rng, th, perWorker, fmt.Sprintf("w%d", w)))
		want += th.Len()
		require.NoError(t, depot.Publish(ctx, WorkerBlobName("run-1/", w), th))
		require.NoError(t, th.Close())
	}

	merged, err := depot.Collect(ctx, "run-1/")
	require.NoError(t, err)
	defer merged.Close()

	require.Equal(t, want, merged.Len())
	requireDescending(t, merged)
}

func TestDepot_CollectEmptyPrefix(t *testing.T) {
	depot := &Depot{Store: blobstore.NewMemoryStore()}
	merged, err := depot.Collect(context.Background(), "no-such-run/")
	require.NoError(t, err)
	defer merged.Close()
	require.Zero(t, merged.Len())
}

func TestDepot_CollectCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "run-1/worker-00000", []byte("garbage")))

	depot := &Depot{Store: store}
	_, err := depot.Collect(ctx, "run-1/")
	require.ErrorIs(t, err, codec.ErrBadFrame)
}
