package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// Uploader wraps a Store with a shared rate limit on deposits. Many workers
// finishing at once would otherwise burst against a remote depot's request
// quota; the limiter spreads them out.
type Uploader struct {
	store   Store
	limiter *rate.Limiter
}

// NewUploader creates a rate-limited uploader. A nil limiter means no limit.
func NewUploader(store Store, limiter *rate.Limiter) *Uploader {
	return &Uploader{store: store, limiter: limiter}
}

// Put waits for limiter admission, then deposits the blob.
func (u *Uploader) Put(ctx context.Context, name string, data []byte) error {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return u.store.Put(ctx, name, data)
}
