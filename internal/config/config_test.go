package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Server.Addr != DefaultAddr {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[layout]
kind = "treemap"
tiling = "binary"
padding = 2.0
width = 1024.0
formats = ["svg", "json"]
show_labels = true

[cache]
backend = "redis"
ttl = "24h"

[cache.redis]
addr = "redis:6379"
db = 2

[server]
addr = ":9090"
write_timeout = "2m"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Layout.Kind != layout.KindTreemap || cfg.Layout.Tiling != layout.TilingBinary {
		t.Errorf("layout = %+v", cfg.Layout.Options)
	}
	if *cfg.Layout.Width != 1024 || cfg.Layout.Padding != 2 || !cfg.Layout.ShowLabels {
		t.Errorf("layout numbers = %+v", cfg.Layout)
	}
	if len(cfg.Layout.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Layout.Formats)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Cache.Redis)
	}
	// Untouched keys keep defaults.
	if cfg.Cache.Redis.Prefix != "arbor:" || cfg.Cache.Mongo.Database != "arbor" {
		t.Errorf("defaults lost: %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.WriteTimeout != 2*time.Minute || cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadKeepsExplicitZero(t *testing.T) {
	path := writeConfig(t, "[layout]\nseparation_cousins = 0.0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p := cfg.Layout.SeparationCousins; p == nil || *p != 0 {
		t.Errorf("separation_cousins = %v, want explicit 0", p)
	}
	if cfg.Layout.SeparationSiblings != nil || cfg.Layout.Width != nil {
		t.Error("unset layout fields should stay nil")
	}
	if _, cousins := cfg.Layout.TreeSeparations(); cousins != 0 {
		t.Errorf("TreeSeparations cousins = %v, want 0", cousins)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\nkind = 1", errors.ErrCodeInvalidFormat},
		{"unknown key", "[layout]\ncolour = \"red\"", errors.ErrCodeInvalidInput},
		{"backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ARBOR_CACHE_BACKEND", "mongo")
	t.Setenv("ARBOR_MONGO_URI", "mongodb://db:27017")
	t.Setenv("ARBOR_SERVER_ADDR", "")

	cfg, err := Load(writeConfig(t, "[server]\naddr = \":7000\""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendMongo || cfg.Cache.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("empty env var overrode file: %q", cfg.Server.Addr)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	if p, _ := DefaultPath(); p != "/tmp/cfg/arbor/config.toml" {
		t.Errorf("DefaultPath() = %q", p)
	}
	if p, _ := DefaultCacheDir(); p != "/tmp/cache/arbor" {
		t.Errorf("DefaultCacheDir() = %q", p)
	}
}

func TestLoadExample(t *testing.T) {
	for _, k := range []string{"ARBOR_CACHE_BACKEND", "ARBOR_CACHE_DIR", "ARBOR_REDIS_ADDR", "ARBOR_SERVER_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Kind != layout.KindTreemap || cfg.Layout.PaddingTop != 14 {
		t.Errorf("layout = %+v", cfg.Layout.Options)
	}
	if cfg.Cache.TTL != 168*time.Hour {
		t.Errorf("ttl = %v, want 168h", cfg.Cache.TTL)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("max_body_bytes = %d", cfg.Server.MaxBodyBytes)
	}
}
