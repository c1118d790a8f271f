// Package config loads arbor's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/arbor/config.toml (falling back to
// ~/.config/arbor/config.toml) unless a path is given explicitly. Every
// section is optional; missing values keep their defaults and command-line
// flags override whatever the file sets.
//
//	[layout]
//	kind = "treemap"
//	tiling = "binary"
//	formats = ["svg", "json"]
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

const appName = "arbor"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)

// Config is the top-level configuration.
type Config struct {
	Layout pipeline.Options `toml:"layout"`
	Cache  Cache            `toml:"cache"`
	Server Server           `toml:"server"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
	Redis   Redis         `toml:"redis"`
	Mongo   Mongo         `toml:"mongo"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures `arbor serve`.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend: BackendFile,
			Redis:   Redis{Addr: "localhost:6379", Prefix: cache.DefaultRedisPrefix},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "arbor", Collection: "cache"},
		},
		Server: Server{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/arbor/).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. A missing default file yields Default(); a missing explicit file
// is an error. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.ApplyEnv()
			return cfg, cfg.Validate()
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = Default()
	case stderrors.Is(err, fs.ErrNotExist):
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides connection settings from ARBOR_* environment
// variables, for container deployments.
func (c *Config) ApplyEnv() {
	set := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	set("ARBOR_CACHE_BACKEND", &c.Cache.Backend)
	set("ARBOR_CACHE_DIR", &c.Cache.Dir)
	set("ARBOR_REDIS_ADDR", &c.Cache.Redis.Addr)
	set("ARBOR_REDIS_PASSWORD", &c.Cache.Redis.Password)
	set("ARBOR_MONGO_URI", &c.Cache.Mongo.URI)
	set("ARBOR_SERVER_ADDR", &c.Server.Addr)
}

// Validate checks the cache and server sections. Layout options are checked
// when a pipeline runs them, after flags have been applied.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server timeouts must be >= 0")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server max_body_bytes must be >= 0")
	}
	return nil
}
