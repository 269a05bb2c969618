package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// lifecycle exercises the whole Store contract against an implementation.
func lifecycle(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "run-1/worker-000", []byte("list zero")))
	require.NoError(t, store.Put(ctx, "run-1/worker-001", []byte("list one")))
	require.NoError(t, store.Put(ctx, "run-2/worker-000", []byte("other run")))

	data, err := store.Get(ctx, "run-1/worker-001")
	require.NoError(t, err)
	require.Equal(t, []byte("list one"), data)

	names, err := store.List(ctx, "run-1/")
	require.NoError(t, err)
	require.Equal(t, []string{"run-1/worker-000", "run-1/worker-001"}, names)

	// Overwrite is a full replace.
	require.NoError(t, store.Put(ctx, "run-1/worker-000", []byte("rewritten")))
	data, err = store.Get(ctx, "run-1/worker-000")
	require.NoError(t, err)
	require.Equal(t, []byte("rewritten"), data)

	require.NoError(t, store.Delete(ctx, "run-1/worker-000"))
	require.NoError(t, store.Delete(ctx, "run-1/worker-000"), "double delete is fine")
	_, err = store.Get(ctx, "run-1/worker-000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	lifecycle(t, NewMemoryStore())
}

func TestLocalStore_Lifecycle(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	lifecycle(t, store)
}

func TestLocalStore_FilesOnDisk(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "run/worker-007", []byte("payload")))

	raw, err := os.ReadFile(filepath.Join(root, "run", "worker-007"))
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), raw)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "blob", []byte("abc")))
	data, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	data[0] = 'z'

	again, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestUploader_RateLimited(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// 1 token, refilled every 50ms: the third Put cannot complete before
	// two refill intervals have passed.
	up := NewUploader(store, rate.NewLimiter(rate.Every(50*time.Millisecond), 1))

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, up.Put(ctx, "blob", []byte("x")))
	}
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestUploader_NilLimiter(t *testing.T) {
	up := NewUploader(NewMemoryStore(), nil)
	require.NoError(t, up.Put(context.Background(), "blob", []byte("x")))
}

func TestUploader_CanceledContext(t *testing.T) {
	up := NewUploader(NewMemoryStore(), rate.NewLimiter(rate.Every(time.Hour), 1))
	ctx := context.Background()
	require.NoError(t, up.Put(ctx, "first", []byte("x")))

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, up.Put(ctx, "second", []byte("x")))
}
