// Package config loads YAML configuration for the slkit bundle and
// validates it with struct tags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// APIConfig holds API credentials and endpoint overrides.
type APIConfig struct {
	// Key is the Trafiklab API key, needed only for the Stop Lookup API.
	Key string `yaml:"key"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent"`
	// TimeoutMS is the HTTP timeout in milliseconds.
	TimeoutMS int `yaml:"timeout_ms" validate:"gte=0"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Backend is the store for cached datasets.
	Backend string `yaml:"backend" validate:"omitempty,oneof=memory file redis"`
	// Dir is the cache directory for the file backend.
	Dir string `yaml:"dir"`
	// TTLHours overrides the default one-week TTL for static datasets.
	TTLHours int `yaml:"ttl_hours" validate:"gte=0"`
	// RedisAddr is the redis server address for the redis backend.
	RedisAddr string `yaml:"redis_addr"`
}

// SearchConfig tunes the helpers' local search.
type SearchConfig struct {
	Mode      string  `yaml:"mode" validate:"omitempty,oneof=substring fuzzy"`
	Limit     int     `yaml:"limit" validate:"gte=0,lte=100"`
	Threshold float64 `yaml:"threshold" validate:"gte=0,lte=1"`
}

// Config is the root configuration document.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`
}

// Defaults used where the document leaves fields unset.
const (
	DefaultBackend = "memory"
	DefaultMode    = "substring"
)

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.applyDefaults().validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() *Config {
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultBackend
	}
	if c.Search.Mode == "" {
		c.Search.Mode = DefaultMode
	}
	return c
}

func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Cache.Backend == "file" && c.Cache.Dir == "" {
		return fmt.Errorf("config: cache.dir is required for the file backend")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("config: cache.redis_addr is required for the redis backend")
	}
	return nil
}

// TTL returns the configured static-data TTL, or zero when unset.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// Timeout returns the configured HTTP timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}
