// Package toml loads dochive configuration from a TOML file. The config
// is the host-application state: it declares which sources are active
// and how the cache, AI provider, and server are set up.
package toml

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dochive/dochive"
	"github.com/pelletier/go-toml/v2"
)

// Defaults applied by Load when the file leaves fields unset.
const (
	DefaultCacheTTL   = 7 * 24 * time.Hour
	DefaultAITimeout  = 30 * time.Second
	DefaultServerAddr = ":8370"
)

// SourceConfig declares one active source.
type SourceConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// CacheConfig configures the cache store.
type CacheConfig struct {
	// Path of the SQLite database file. ":memory:" keeps the cache
	// in-process.
	Path string `toml:"path"`

	// TTLHours is the entry expiry; defaults to one week.
	TTLHours int `toml:"ttl_hours"`
}

// AIConfig selects and configures the AI capability provider.
type AIConfig struct {
	// Provider is "gemini", "ollama", or "" for none.
	Provider string `toml:"provider"`

	Model      string `toml:"model"`
	EmbedModel string `toml:"embed_model"`

	// Host applies to the ollama provider only.
	Host string `toml:"host"`

	// TimeoutSeconds bounds each AI call; a timeout is treated as
	// capability-unavailable. Defaults to 30.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ServerConfig configures the HTTP query interface.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Config is the full dochive configuration.
type Config struct {
	// Primary is the active primary source; Parent is set when the
	// primary derives from another source (child/parent theming).
	Primary    SourceConfig   `toml:"primary"`
	Parent     *SourceConfig  `toml:"parent"`
	Extensions []SourceConfig `toml:"extensions"`

	Cache  CacheConfig  `toml:"cache"`
	AI     AIConfig     `toml:"ai"`
	Server ServerConfig `toml:"server"`
}

// Ensure Config implements dochive.SourceLister at compile time.
var _ dochive.SourceLister = (*Config)(nil)

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes config from TOML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Primary.Name == "" || cfg.Primary.Path == "" {
		return nil, dochive.Errorf(dochive.EINVALID, "config requires a primary source with name and path")
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ":memory:"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}

	return &cfg, nil
}

// Sources enumerates the active sources: primary first, then the
// primary's parent when present, then extensions.
func (c *Config) Sources(ctx context.Context) ([]dochive.Source, error) {
	sources := []dochive.Source{{
		Name:     c.Primary.Name,
		Kind:     dochive.SourceKindPrimary,
		RootPath: c.Primary.Path,
	}}

	if c.Parent != nil {
		sources = append(sources, dochive.Source{
			Name:     c.Parent.Name,
			Kind:     dochive.SourceKindPrimary,
			RootPath: c.Parent.Path,
		})
	}

	for _, ext := range c.Extensions {
		if ext.Name == "" || ext.Path == "" {
			continue
		}
		sources = append(sources, dochive.Source{
			Name:     ext.Name,
			Kind:     dochive.SourceKindExtension,
			RootPath: ext.Path,
		})
	}

	for i := range sources {
		if err := sources[i].Validate(); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// CacheTTL returns the configured entry TTL.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLHours > 0 {
		return time.Duration(c.Cache.TTLHours) * time.Hour
	}
	return DefaultCacheTTL
}

// AITimeout returns the configured per-call AI timeout.
func (c *Config) AITimeout() time.Duration {
	if c.AI.TimeoutSeconds > 0 {
		return time.Duration(c.AI.TimeoutSeconds) * time.Second
	}
	return DefaultAITimeout
}
