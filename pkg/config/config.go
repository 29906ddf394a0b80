// Package config loads roadgraph settings from a TOML file and the
// environment.
//
// The default file is $XDG_CONFIG_HOME/roadgraph/config.toml, falling back
// to ~/.config/roadgraph/config.toml. A missing file is not an error;
// defaults apply. Environment variables override the file:
//
//	ROADGRAPH_OVERPASS_ENDPOINT  overpass.endpoint
//	ROADGRAPH_CACHE_BACKEND      cache.backend
//	ROADGRAPH_REDIS_ADDR         cache.redis_addr
//	ROADGRAPH_SERVER_ADDR        server.addr
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roadgraph/pkg/cache"
	"github.com/matzehuels/roadgraph/pkg/geo"
	"github.com/matzehuels/roadgraph/pkg/overpass"
)

// Config is the full set of settings.
type Config struct {
	Overpass Overpass `toml:"overpass"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Overpass configures the map data provider.
type Overpass struct {
	Endpoint  string   `toml:"endpoint"`
	UserAgent string   `toml:"user_agent"`
	Timeout   Duration `toml:"timeout"`
	TileSize  float64  `toml:"tile_size"`
}

// Cache configures the provider response cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	KeyPrefix string   `toml:"key_prefix"` // shared Redis databases
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration is a time.Duration written as a string such as "60s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Overpass: Overpass{
			Endpoint: overpass.DefaultEndpoint,
			Timeout:  Duration{overpass.DefaultHTTPTimeout},
			TileSize: geo.DefaultTileSize,
		},
		Cache: Cache{
			Backend:   cache.BackendFile,
			TTL:       Duration{cache.TTLQuery},
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "roadgraph", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".roadgraph", "config.toml")
	}
	return filepath.Join(home, ".config", "roadgraph", "config.toml")
}

// Load reads path on top of Default and applies environment overrides. An
// empty path selects DefaultPath; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"ROADGRAPH_OVERPASS_ENDPOINT", &c.Overpass.Endpoint},
		{"ROADGRAPH_CACHE_BACKEND", &c.Cache.Backend},
		{"ROADGRAPH_REDIS_ADDR", &c.Cache.RedisAddr},
		{"ROADGRAPH_SERVER_ADDR", &c.Server.Addr},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Overpass.Endpoint == "":
		return fmt.Errorf("overpass.endpoint must not be empty")
	case c.Overpass.Timeout.Duration < 0:
		return fmt.Errorf("overpass.timeout must not be negative")
	case c.Overpass.TileSize < 0:
		return fmt.Errorf("overpass.tile_size must not be negative")
	case c.Cache.TTL.Duration < 0:
		return fmt.Errorf("cache.ttl must not be negative")
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend %q: %w", c.Cache.Backend, cache.ErrUnknownBackend)
	}
	return nil
}

// CacheOptions returns the options for cache.Open.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisAddr: c.Cache.RedisAddr}
}

// ClientOptions returns overpass client options without a cache; callers
// attach the opened cache themselves. A cache.key_prefix scopes every key.
func (c Config) ClientOptions() overpass.ClientOptions {
	return overpass.ClientOptions{
		Endpoint:  c.Overpass.Endpoint,
		UserAgent: c.Overpass.UserAgent,
		Timeout:   c.Overpass.Timeout.Duration,
		CacheTTL:  c.Cache.TTL.Duration,
		Keyer:     c.keyer(),
	}
}

func (c Config) keyer() cache.Keyer {
	if c.Cache.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.KeyPrefix)
}
