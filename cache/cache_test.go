package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type recordingHooks struct {
	mu        sync.Mutex
	hits      int
	misses    int
	expired   int
	selfHeals int
	fetches   int
	fetchErrs int
}

func (r *recordingHooks) Hit(key string)  { r.mu.Lock(); r.hits++; r.mu.Unlock() }
func (r *recordingHooks) Miss(key string) { r.mu.Lock(); r.misses++; r.mu.Unlock() }
func (r *recordingHooks) Expired(key string) {
	r.mu.Lock()
	r.expired++
	r.mu.Unlock()
}
func (r *recordingHooks) SelfHeal(key, reason string) {
	r.mu.Lock()
	r.selfHeals++
	r.mu.Unlock()
}
func (r *recordingHooks) FetchDone(key string, took time.Duration, err error) {
	r.mu.Lock()
	r.fetches++
	if err != nil {
		r.fetchErrs++
	}
	r.mu.Unlock()
}

// flakyBackend fails reads until healed.
type flakyBackend struct {
	*MemoryBackend
	failReads atomic.Bool
}

func (f *flakyBackend) Get(ctx context.Context, key string) (Entry, bool, error) {
	if f.failReads.Load() {
		return Entry{}, false, errors.New("backend down")
	}
	return f.MemoryBackend.Get(ctx, key)
}

func TestGetSetRoundTrip(t *testing.T) {
	c := NewMemory[[]string]()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "k", []string{"a", "b"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(v) != 2 || v[0] != "a" {
		t.Fatalf("v = %v", v)
	}
}

func TestExpiredEntryEvicted(t *testing.T) {
	backend := NewMemoryBackend()
	hooks := &recordingHooks{}
	c, err := New(Options[string]{Backend: backend, Hooks: hooks})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expired entry: ok=%v err=%v", ok, err)
	}
	if hooks.expired != 1 {
		t.Fatalf("expired hook = %d", hooks.expired)
	}
	// entry physically gone from the backend
	if _, ok, _ := backend.Get(ctx, "k"); ok {
		t.Fatal("expired entry still in backend")
	}
}

func TestUndecodableEntrySelfHeals(t *testing.T) {
	backend := NewMemoryBackend()
	hooks := &recordingHooks{}
	c, err := New(Options[int]{Backend: backend, Hooks: hooks})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	// not valid JSON for an int
	err = backend.Set(ctx, "k", Entry{Payload: []byte("{"), ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("backend Set: %v", err)
	}

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
	if hooks.selfHeals != 1 {
		t.Fatalf("selfHeal hook = %d", hooks.selfHeals)
	}
	if _, ok, _ := backend.Get(ctx, "k"); ok {
		t.Fatal("corrupt entry still in backend")
	}
}

func TestGetOrFetchSingleFlight(t *testing.T) {
	c := NewMemory[int]()
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		fetches.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	}

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vals[i], errs[i] = c.GetOrFetch(ctx, "k", fetch, time.Minute)
		}(i)
	}
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("fetches = %d, want 1", got)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil || vals[i] != 42 {
			t.Fatalf("caller %d: v=%d err=%v", i, vals[i], errs[i])
		}
	}
}

func TestGetOrFetchErrorNotCached(t *testing.T) {
	hooks := &recordingHooks{}
	c, err := New(Options[int]{Backend: NewMemoryBackend(), Hooks: hooks})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	boom := errors.New("boom")
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := c.GetOrFetch(ctx, "k", fetch, time.Minute); !errors.Is(err, boom) {
		t.Fatalf("first call err = %v, want boom", err)
	}
	// the failure was not cached: the next call fetches again and succeeds
	v, err := c.GetOrFetch(ctx, "k", fetch, time.Minute)
	if err != nil || v != 7 {
		t.Fatalf("second call: v=%d err=%v", v, err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if hooks.fetchErrs != 1 {
		t.Fatalf("fetchErrs = %d", hooks.fetchErrs)
	}
}

func TestGetOrFetchSecondEpisodeRefetches(t *testing.T) {
	c := NewMemory[int]()
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if v, _ := c.GetOrFetch(ctx, "k", fetch, time.Minute); v != 1 {
		t.Fatalf("v = %d", v)
	}
	if err := c.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if v, _ := c.GetOrFetch(ctx, "k", fetch, time.Minute); v != 2 {
		t.Fatalf("v after invalidate = %d", v)
	}
}

func TestGetOrFetchBackendReadFailureFallsThrough(t *testing.T) {
	backend := &flakyBackend{MemoryBackend: NewMemoryBackend()}
	c, err := New(Options[int]{Backend: backend})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	backend.failReads.Store(true)

	v, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 9, nil
	}, time.Minute)
	if err != nil || v != 9 {
		t.Fatalf("v=%d err=%v", v, err)
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	c := NewMemory[int]()
	ctx := context.Background()

	if err := c.Invalidate(ctx, "never-set"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := c.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := c.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("second Invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("entry survived invalidation")
	}
}

func TestClear(t *testing.T) {
	c := NewMemory[int]()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, 1, time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, ok, _ := c.Get(ctx, k); ok {
			t.Fatalf("key %q survived Clear", k)
		}
	}
}

func TestNewRequiresBackend(t *testing.T) {
	if _, err := New(Options[int]{}); err == nil {
		t.Fatal("expected error without backend")
	}
}

func TestHitMissHooks(t *testing.T) {
	hooks := &recordingHooks{}
	c, err := New(Options[int]{Backend: NewMemoryBackend(), Hooks: hooks})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	c.Get(ctx, "k")
	c.Set(ctx, "k", 1, time.Minute)
	c.Get(ctx, "k")

	if hooks.misses != 1 || hooks.hits != 1 {
		t.Fatalf("hooks = %+v", hooks)
	}
}
