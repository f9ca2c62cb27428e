package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/slkit/slkit/internal/util"
	"github.com/slkit/slkit/internal/wire"
)

const fileExt = ".slcache"

// FileBackend persists each entry in its own file so cached data survives
// restarts. File names are the sha256 of the key: arbitrary key characters
// cannot traverse paths or exceed name-length limits. A file that fails to
// parse is treated as a miss and removed so it cannot fail twice.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

var _ Backend = (*FileBackend)(nil)

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: file backend dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, util.HashKey(key)+fileExt)
}

func (b *FileBackend) Get(_ context.Context, key string) (Entry, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.path(key)
	raw, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	exp, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = os.Remove(p) // self-heal corrupt file
		return Entry{}, false, nil
	}
	// payload aliases raw which is private to this call, but copy anyway so
	// the entry owns its bytes
	return Entry{Payload: append([]byte(nil), payload...), ExpiresAt: exp}, true, nil
}

func (b *FileBackend) Set(_ context.Context, key string, e Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw := wire.EncodeEntry(e.ExpiresAt, e.Payload)
	p := b.path(key)

	// write-then-rename so readers never observe a half-written entry
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every file carrying the backend's extension. Unrelated files
// in the directory are left alone.
func (b *FileBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, de.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (b *FileBackend) Close(context.Context) error { return nil }
