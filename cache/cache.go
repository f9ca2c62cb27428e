package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slkit/slkit/codec"
)

// TTLStatic is the suggested TTL for data that rarely changes, such as the
// full stop and line lists (1 week).
const TTLStatic = 7 * 24 * time.Hour

const defaultTTL = 10 * time.Minute

// FetchFunc loads a value from the upstream source on a cache miss.
// It is typically network-bound and should honor ctx.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Options tune the generic cache. Only Backend is required.
type Options[V any] struct {
	// Required
	Backend Backend

	Codec      codec.Codec[V] // nil => codec.JSON[V]
	Logger     Logger         // nil => NopLogger
	Hooks      Hooks          // nil => NopHooks
	DefaultTTL time.Duration  // 0 => 10m
}

// Cache is a TTL cache for values of type V on top of a pluggable Backend.
// All methods are safe for concurrent use.
type Cache[V any] struct {
	backend Backend
	codec   codec.Codec[V]
	log     Logger
	hooks   Hooks
	ttl     time.Duration

	// per-key fetch locks; created atomically on first use, never removed.
	// The key space is small and fixed (one key per cached collection), so
	// the registry stays bounded in practice.
	flightMu sync.Mutex
	flights  map[string]*sync.Mutex
}

func New[V any](opts Options[V]) (*Cache[V], error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("cache: backend is required")
	}
	c := &Cache[V]{
		backend: opts.Backend,
		flights: make(map[string]*sync.Mutex),
	}
	c.codec = opts.Codec
	if c.codec == nil {
		c.codec = codec.JSON[V]{}
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.ttl = coalesce[time.Duration](opts.DefaultTTL, defaultTTL)
	return c, nil
}

// NewMemory is a convenience constructor: in-memory backend, JSON codec,
// default TTL. It cannot fail.
func NewMemory[V any]() *Cache[V] {
	c, err := New[V](Options[V]{Backend: NewMemoryBackend()})
	if err != nil {
		panic(err) // unreachable: backend is always set
	}
	return c
}

// NewWithFileBackend is a convenience constructor selecting the persisted
// file backend. A ttl of 0 keeps the default.
func NewWithFileBackend[V any](dir string, ttl time.Duration) (*Cache[V], error) {
	b, err := NewFileBackend(dir)
	if err != nil {
		return nil, err
	}
	return New[V](Options[V]{Backend: b, DefaultTTL: ttl})
}

// Get returns the stored value if present and unexpired. Expired entries are
// treated as absent and evicted; entries that fail to decode are deleted so
// they cannot fail twice.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	e, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.hooks.Miss(key)
		return zero, false, err
	}
	if !ok {
		c.hooks.Miss(key)
		return zero, false, nil
	}
	if e.Expired(time.Now()) {
		_ = c.backend.Delete(ctx, key)
		c.log.Debug("evicted expired entry", Fields{"key": key})
		c.hooks.Expired(key)
		c.hooks.Miss(key)
		return zero, false, nil
	}
	v, err := c.codec.Decode(e.Payload)
	if err != nil {
		_ = c.backend.Delete(ctx, key) // self-heal
		c.log.Warn("deleted undecodable entry", Fields{"key": key, "err": err})
		c.hooks.SelfHeal(key, "decode")
		c.hooks.Miss(key)
		return zero, false, nil
	}
	c.hooks.Hit(key)
	return v, true, nil
}

// Set stores value with expiry now+ttl. A ttl of 0 uses the default.
func (c *Cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	payload, err := c.codec.Encode(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, Entry{
		Payload:   payload,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// GetOrFetch returns the cached value for key, fetching it with fetch on a
// miss. For any given key the fetch runs at most once per miss episode:
// concurrent callers wait on a per-key lock, re-check the cache once they
// hold it, and return the first caller's result.
//
// If fetch fails, the error goes to the caller that ran it and nothing is
// cached; waiters find the cache still empty and attempt their own fetch.
// Failures are deliberately not cached, keeping recovery simple at the cost
// of a possible retry burst right after an upstream outage.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V], ttl time.Duration) (V, error) {
	if v, ok, err := c.Get(ctx, key); ok {
		return v, nil
	} else if err != nil {
		// backend trouble is not fatal here: fall through to the fetch path
		c.log.Warn("backend read failed, fetching", Fields{"key": key, "err": err})
	}

	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// double-check: someone may have populated the key while we waited
	if v, ok, _ := c.Get(ctx, key); ok {
		return v, nil
	}

	start := time.Now()
	v, err := fetch(ctx)
	c.hooks.FetchDone(key, time.Since(start), err)
	if err != nil {
		var zero V
		return zero, err
	}

	if err := c.Set(ctx, key, v, ttl); err != nil {
		// the fetched value is still good; serving it beats failing the call
		c.log.Warn("failed to store fetched value", Fields{"key": key, "err": err})
	}
	return v, nil
}

// Invalidate deletes a single key.
func (c *Cache[V]) Invalidate(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// Clear removes every entry from the backend.
func (c *Cache[V]) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

func (c *Cache[V]) Close(ctx context.Context) error {
	return c.backend.Close(ctx)
}

func (c *Cache[V]) keyLock(key string) *sync.Mutex {
	c.flightMu.Lock()
	defer c.flightMu.Unlock()
	l, ok := c.flights[key]
	if !ok {
		l = &sync.Mutex{}
		c.flights[key] = l
	}
	return l
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
