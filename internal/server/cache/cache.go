// Package cache provides the read-aside cache for record snapshots: a
// key-value contract, a Redis-backed implementation, and a failsafe
// wrapper that turns every backend failure into a miss or a no-op.
//
// The cache is a derived, disposable acceleration structure. Losing it
// entirely must never change an operation's outcome, only its latency.
package cache

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Get when no snapshot exists for the key
// (or the backend treated the lookup as a miss).
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized record snapshots keyed by guid.
type Cache interface {
	// Get returns the stored snapshot, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores/overwrites the snapshot for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the snapshot if present. A missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
