// Package cache defines the caching interface used for product listings.
// Implementations live in the redis and memory subpackages.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss indicates the key was not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the minimal caching contract the service layer needs.
// Cache failures are advisory: callers log them and fall through to the
// store, never failing a request because the cache misbehaved.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ProductListingKey returns the cache key for a user's product listing.
func ProductListingKey(ownerID int64) string {
	return fmt.Sprintf("cache:products:%d", ownerID)
}
