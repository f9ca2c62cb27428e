package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`api:
  key: "secret"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.Search.Mode != "substring" {
		t.Fatalf("mode = %q", cfg.Search.Mode)
	}
	if cfg.API.Key != "secret" {
		t.Fatalf("key = %q", cfg.API.Key)
	}
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`api:
  key: "k"
  timeout_ms: 5000
cache:
  backend: file
  dir: /tmp/slkit
  ttl_hours: 24
search:
  mode: fuzzy
  limit: 20
  threshold: 0.7
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/slkit" {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.TTL() != 24*time.Hour {
		t.Fatalf("TTL = %v", cfg.TTL())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout())
	}
	if cfg.Search.Mode != "fuzzy" || cfg.Search.Threshold != 0.7 {
		t.Fatalf("search = %+v", cfg.Search)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad backend", "cache:\n  backend: memcached\n"},
		{"bad mode", "search:\n  mode: regex\n"},
		{"threshold out of range", "search:\n  threshold: 1.5\n"},
		{"negative ttl", "cache:\n  ttl_hours: -1\n"},
		{"file backend without dir", "cache:\n  backend: file\n"},
		{"redis backend without addr", "cache:\n  backend: redis\n"},
		{"not yaml", ":\n -"},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.doc)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	doc := "cache:\n  backend: memory\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Cache.Backend)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
