package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/guidstore/internal/logging"
)

// Failsafe decorates a Cache so that no backend failure ever reaches
// the caller: Get degrades to a miss, Set and Delete to no-ops. Every
// operation is bounded by opTimeout, and writes/invalidations run on a
// cancellation-detached context so they still complete when the client
// disconnects mid-request.
type Failsafe struct {
	inner     Cache
	logger    logging.Logger
	opTimeout time.Duration
}

// NewFailsafe wraps inner. opTimeout <= 0 disables the per-op bound.
func NewFailsafe(inner Cache, logger logging.Logger, opTimeout time.Duration) *Failsafe {
	return &Failsafe{
		inner:     inner,
		logger:    logger.With("module", "cache"),
		opTimeout: opTimeout,
	}
}

func (f *Failsafe) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.opTimeout)
}

func (f *Failsafe) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	val, err := f.inner.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			f.logger.Debug(ctx, "cache get failed, treating as miss", "key", key, "error", err.Error())
		}
		return nil, ErrCacheMiss
	}
	return val, nil
}

func (f *Failsafe) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := f.withTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if err := f.inner.Set(ctx, key, value); err != nil {
		f.logger.Debug(ctx, "cache set failed, skipping", "key", key, "error", err.Error())
	}
	return nil
}

func (f *Failsafe) Delete(ctx context.Context, key string) error {
	// Invalidation must not be abandoned on client disconnect, or the
	// stale entry would outlive the normal consistency window.
	ctx, cancel := f.withTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if err := f.inner.Delete(ctx, key); err != nil {
		f.logger.Debug(ctx, "cache delete failed, skipping", "key", key, "error", err.Error())
	}
	return nil
}
