// Package config loads apkgraph settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML config file ($XDG_CONFIG_HOME/apkgraph/config.toml, or the
//     path given with --config)
//  3. a .env file in the working directory (only fills variables that are
//     not already set in the environment)
//  4. APKGRAPH_* environment variables
//  5. command-line flags (applied by the CLI, not here)
//
// Example config.toml:
//
//	repo_url = "https://dl-cdn.alpinelinux.org/alpine/v3.19/main/x86_64"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
//	[http]
//	timeout = "45s"
//	attempts = 5
//
//	[limits]
//	max_nodes = 20000
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
)

const appName = "apkgraph"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds every configurable setting.
type Config struct {
	RepoURL string       `toml:"repo_url"`
	Cache   CacheConfig  `toml:"cache"`
	HTTP    HTTPConfig   `toml:"http"`
	Limits  LimitsConfig `toml:"limits"`
}

// CacheConfig selects and tunes the index cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"` // "0s" keeps indexes until --refresh
	RedisURL string        `toml:"redis_url"`
}

// HTTPConfig tunes index downloads.
type HTTPConfig struct {
	Timeout  time.Duration `toml:"timeout"`
	Attempts int           `toml:"attempts"`
}

// LimitsConfig bounds a resolution run.
type LimitsConfig struct {
	MaxNodes int `toml:"max_nodes"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     6 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:  30 * time.Second,
			Attempts: 3,
		},
	}
}

// Load builds the configuration from defaults, the config file, .env and
// the environment. An empty path selects [DefaultPath], which may be
// missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, apkerr.Wrap(apkerr.ErrCodeInvalidConfig, err, "load .env")
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apkerr.Wrap(apkerr.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return apkerr.Wrap(apkerr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides settings from APKGRAPH_* variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return apkerr.Wrap(apkerr.ErrCodeInvalidConfig, err, "%s", name)
		}
		*dst = d
		return nil
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return apkerr.Wrap(apkerr.ErrCodeInvalidConfig, err, "%s", name)
		}
		*dst = n
		return nil
	}

	str("APKGRAPH_REPO_URL", &c.RepoURL)
	str("APKGRAPH_CACHE_BACKEND", &c.Cache.Backend)
	str("APKGRAPH_CACHE_DIR", &c.Cache.Dir)
	str("APKGRAPH_REDIS_URL", &c.Cache.RedisURL)

	return errors.Join(
		dur("APKGRAPH_CACHE_TTL", &c.Cache.TTL),
		dur("APKGRAPH_HTTP_TIMEOUT", &c.HTTP.Timeout),
		num("APKGRAPH_HTTP_ATTEMPTS", &c.HTTP.Attempts),
		num("APKGRAPH_MAX_NODES", &c.Limits.MaxNodes),
	)
}

// Validate checks value ranges and backend requirements.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return apkerr.New(apkerr.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "invalid cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.HTTP.Timeout < 0 {
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "http.timeout must not be negative")
	}
	if c.HTTP.Attempts < 1 {
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "http.attempts must be at least 1")
	}
	if c.Limits.MaxNodes < 0 {
		return apkerr.New(apkerr.ErrCodeInvalidConfig, "limits.max_nodes must not be negative")
	}
	return nil
}

// CacheDir returns the configured cache directory, or the XDG default
// (~/.cache/apkgraph).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// DefaultPath returns the default config file location, or "" when no
// home directory can be determined.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
