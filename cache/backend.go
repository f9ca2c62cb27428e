// Package cache implements a TTL cache generic over the value type, built
// from a pluggable Backend (entry store) and a Codec (value serializer).
//
// GetOrFetch is the central operation: on a miss it runs the supplied fetch
// function at most once per key no matter how many callers race for it, and
// every caller gets the fetched value. Expired entries are evicted lazily on
// read; corrupt entries are deleted so they cannot fail twice.
package cache

import "context"

// Backend is a minimal entry store. Implementations must be safe for
// concurrent use and must return entries byte-for-byte as they were stored.
//
// Backends do not interpret expiry: the Cache checks Entry.ExpiresAt on read
// and deletes what is stale. Stores with native TTLs (redis, ristretto,
// bigcache) may additionally expire entries on their own; an entry vanishing
// early is indistinguishable from a miss and is harmless.
type Backend interface {
	// Get returns (entry, true, nil) on hit; (Entry{}, false, nil) on miss.
	// If an IO/remote error happens, return (Entry{}, false, err).
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set stores the entry under key, replacing any previous entry.
	Set(ctx context.Context, key string, e Entry) error

	// Delete removes a key (best-effort; absent keys are not an error).
	Delete(ctx context.Context, key string) error

	// Clear removes every entry managed by this backend.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
