package cache

import (
	"context"
	"sync"
)

// MemoryBackend keeps entries in a process-local map. Entries vanish on
// restart. A single mutex guards the map; the working set here is a handful
// of "all records" collections, not per-request data, so coarse locking is
// fine.
type MemoryBackend struct {
	mu sync.Mutex
	m  map[string]Entry
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{m: make(map[string]Entry)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	b.mu.Lock()
	e, ok := b.m[key]
	b.mu.Unlock()
	return e, ok, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, e Entry) error {
	b.mu.Lock()
	b.m[key] = e
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.m, key)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	b.m = make(map[string]Entry)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Close(context.Context) error { return nil }
