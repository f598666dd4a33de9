// Package db defines the key-value store contract backing the optional
// query response cache.
package db

import (
	"context"
	"time"
)

// Store is the storage contract. The only implementation is Redis via
// rueidis; tests swap in fakes.
type Store interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores a value with an expiration.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Incr atomically increments a counter key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// WaitForReady polls until the store responds or the timeout expires.
	WaitForReady(ctx context.Context, timeout time.Duration) error
	// Close shuts down the client.
	Close()
}
