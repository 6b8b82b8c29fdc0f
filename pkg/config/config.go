// Package config loads treelayout settings from a TOML file.
//
// Settings are grouped by the component they configure:
//
//	[layout]
//	depth_spacing = 1.0
//	offset_spacing = 1.0
//	root_gap = 0.0
//
//	[render]
//	style = "simple"
//	formats = ["svg"]
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "24h"
//
//	[storage]
//	backend = "memory" # memory or mongo
//
//	[server]
//	addr = ":8080"
//
// Missing keys keep their defaults; unknown keys are rejected.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treelayout/pkg/cache"
	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

const appName = "treelayout"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// DefaultServerAddr is the address the HTTP server listens on.
const DefaultServerAddr = ":8080"

// Config is the complete treelayout configuration.
type Config struct {
	Layout  generate.Options `toml:"layout"`
	Render  Render           `toml:"render"`
	Cache   Cache            `toml:"cache"`
	Storage Storage          `toml:"storage"`
	Server  Server           `toml:"server"`
}

// Render holds rendering defaults.
type Render struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Margin  float64  `toml:"margin"`
	Labels  bool     `toml:"labels"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Storage selects and configures the layout document store.
type Storage struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "36h" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills every unset field with its default value.
func (c *Config) SetDefaults() {
	c.Layout.SetDefaults()

	if c.Render.Style == "" {
		c.Render.Style = pipeline.DefaultStyle
	}
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{pipeline.FormatSVG}
	}
	if c.Render.Width == 0 {
		c.Render.Width = pipeline.DefaultWidth
	}
	if c.Render.Height == 0 {
		c.Render.Height = pipeline.DefaultHeight
	}
	if c.Render.Margin == 0 {
		c.Render.Margin = pipeline.DefaultMargin
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = cache.TTLArtifact
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageMemory
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate checks the configuration for invalid values.
// All errors carry the INVALID_CONFIG code.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidConfig, err, "[layout]")
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateForRender(); err != nil {
		return tlerrors.Wrap(tlerrors.ErrCodeInvalidConfig, err, "[render]")
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "[cache] redis backend requires redis_addr")
		}
	default:
		return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "[cache] unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "[cache] ttl cannot be negative: %s", c.Cache.TTL)
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageMongo:
		if c.Storage.MongoURI == "" {
			return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "[storage] mongo backend requires mongo_uri")
		}
	default:
		return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "[storage] unknown backend %q", c.Storage.Backend)
	}
	return nil
}

// PipelineOptions converts the layout and render sections to pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		DepthSpacing:  c.Layout.DepthSpacing,
		OffsetSpacing: c.Layout.OffsetSpacing,
		RootGap:       c.Layout.RootGap,
		Formats:       slices.Clone(c.Render.Formats),
		Style:         c.Render.Style,
		Width:         c.Render.Width,
		Height:        c.Render.Height,
		Margin:        c.Render.Margin,
		Labels:        c.Render.Labels,
	}
}

// Decode reads a configuration from r, applies defaults and validates it.
func Decode(r io.Reader) (*Config, error) {
	c := &Config{}
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration at path. An empty path loads DefaultPath,
// and a missing default file yields Default(). A missing explicit path is
// a FILE_NOT_FOUND error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, tlerrors.Wrap(tlerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, tlerrors.Wrap(tlerrors.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, tlerrors.Wrap(tlerrors.GetCode(err), err, "%s", path)
	}
	return c, nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DefaultPath returns $XDG_CONFIG_HOME/treelayout/config.toml, falling back
// to ~/.config/treelayout/config.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return tlerrors.New(tlerrors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(names, ", "))
}
