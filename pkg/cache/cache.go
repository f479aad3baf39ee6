// Package cache stores raw package index payloads between runs.
//
// Fetching a remote index archive is the only slow step of a resolution run,
// so the downloaded (already extracted) index text is cached under a key
// derived from its URL. Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for build farms running many
//     resolutions against the same mirrors
//   - [NullCache]: caching disabled
//
// Caches store bytes only; they never hold a dependency graph, which is
// rebuilt for every run.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss (absent or expired) returns
	// hit=false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// IndexKey returns the cache key for the index fetched from source.
func IndexKey(source string) string {
	return hashKey("index", source)
}
