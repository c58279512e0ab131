// Package config loads tkfmw configuration from TOML files.
//
// Configuration covers the defaults shared by the CLI and the HTTP
// server: canvas bounds, tile grid, cache backend, and store endpoints.
// Flags override file values; the file overrides built-in defaults.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jiro4989/tkfmw/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Grid    GridConfig    `toml:"grid"`
	Cache   CacheConfig   `toml:"cache"`
	Session SessionConfig `toml:"session"`
	Server  ServerConfig  `toml:"server"`
}

// CanvasConfig holds default bounds for layer partitioning.
type CanvasConfig struct {
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// GridConfig holds the default tile grid.
type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the XDG cache dir.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis server (redis backend).
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// SessionConfig configures the crop-session store.
type SessionConfig struct {
	// MongoURI enables the Mongo store when set; otherwise sessions are
	// kept in files.
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// Duration wraps time.Duration so TOML values can be written as "720h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// MaxUploadBytes caps multipart image uploads.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{MaxWidth: 1920, MaxHeight: 1080},
		Grid:   GridConfig{Rows: 4, Cols: 4},
		Cache:  CacheConfig{Backend: CacheBackendFile},
		Session: SessionConfig{
			MongoDatabase: "tkfmw",
			TTL:           Duration{Duration: 30 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file at the default location is not an error; an explicitly
// requested file must exist.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if err := errors.ValidateBounds(c.Canvas.MaxWidth, c.Canvas.MaxHeight); err != nil {
		return err
	}
	if err := errors.ValidateGrid(c.Grid.Rows, c.Grid.Cols); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendNone:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires redis_addr", c.Cache.Backend)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Session.MongoURI != "" && c.Session.MongoDatabase == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo_uri requires mongo_database")
	}
	return nil
}
