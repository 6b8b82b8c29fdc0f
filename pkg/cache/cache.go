// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Computing a layout is cheap for small trees, but rendering through
// Graphviz or rsvg-convert is not, and the HTTP server may see the same
// tree many times. The pipeline therefore caches both stages under content
// addressed keys:
//
//   - layout:<sha256(tree hash, layout options)>
//   - artifact:<sha256(layout hash, format, render options)>
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// All backends are safe for concurrent use.
//
// # Keys
//
// A [Keyer] builds keys from hashes and options; [ScopedKeyer] prefixes
// every key to isolate namespaces that share one backend.
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(treeJSON), cache.LayoutKeyOpts{DepthSpacing: 1, OffsetSpacing: 1})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// =============================================================================
// Keys
// =============================================================================

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey returns the key for a layout computed from the tree with
	// the given content hash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout options that change the computed layout.
type LayoutKeyOpts struct {
	DepthSpacing  float64 `json:"depth_spacing"`
	OffsetSpacing float64 `json:"offset_spacing"`
	RootGap       float64 `json:"root_gap"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
	Scale  float64 `json:"scale"`
	Labels bool    `json:"labels"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
