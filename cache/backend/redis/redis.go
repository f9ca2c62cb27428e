// Package redis adapts a go-redis client to the cache.Backend interface,
// for sharing the cached stop/line lists across processes.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/slkit/slkit/cache"
	"github.com/slkit/slkit/internal/wire"
)

var ErrNilClient = errors.New("redis backend: nil client")

const defaultKeyPrefix = "slkit:"

type Backend struct {
	rdb         goredis.UniversalClient
	prefix      string
	closeClient bool
}

var _ cache.Backend = (*Backend)(nil)

type Config struct {
	Client goredis.UniversalClient

	// KeyPrefix namespaces every key so Clear cannot touch foreign data.
	// Empty => "slkit:".
	KeyPrefix string

	// CloseClient releases the client on Close. Set true only if this
	// backend exclusively owns the client.
	CloseClient bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Backend{rdb: cfg.Client, prefix: prefix, closeClient: cfg.CloseClient}, nil
}

func (b *Backend) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	raw, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if err == goredis.Nil {
		return cache.Entry{}, false, nil // miss
	}
	if err != nil {
		return cache.Entry{}, false, err // transport/server error
	}
	exp, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = b.rdb.Del(ctx, b.prefix+key).Err() // self-heal corrupt
		return cache.Entry{}, false, nil
	}
	return cache.Entry{Payload: payload, ExpiresAt: exp}, true, nil
}

func (b *Backend) Set(ctx context.Context, key string, e cache.Entry) error {
	ttl := time.Until(e.ExpiresAt)
	if ttl <= 0 {
		// already stale; make sure nothing older lingers either
		return b.Delete(ctx, key)
	}
	raw := wire.EncodeEntry(e.ExpiresAt, e.Payload)
	return b.rdb.Set(ctx, b.prefix+key, raw, ttl).Err()
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.rdb.Del(ctx, b.prefix+key).Err()
}

// Clear removes every key under the backend's prefix via SCAN, leaving
// unrelated keys in the same database untouched.
func (b *Backend) Clear(ctx context.Context) error {
	iter := b.rdb.Scan(ctx, 0, b.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := b.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Backend) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
