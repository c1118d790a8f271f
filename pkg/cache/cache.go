// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a plain byte store with per-entry TTL. Four backends are
// provided:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Keys are produced by a [Keyer] from a content hash of the input tree plus
// every option that affects the output, so a changed option never returns a
// stale entry.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(treeJSON), cache.LayoutKeyOpts{Kind: "tree"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use cached layout
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store keyed by string.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// LayoutKeyOpts lists the options that change a computed layout.
type LayoutKeyOpts struct {
	Kind               string  `json:"kind"`
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	NodeWidth          float64 `json:"node_width,omitempty"`
	NodeHeight         float64 `json:"node_height,omitempty"`
	SeparationSiblings float64 `json:"separation_siblings,omitempty"`
	SeparationCousins  float64 `json:"separation_cousins,omitempty"`
	Separation         float64 `json:"separation,omitempty"`
	Tiling             string  `json:"tiling,omitempty"`
	Padding            float64 `json:"padding,omitempty"`
	PaddingTop         float64 `json:"padding_top,omitempty"`
	PaddingOuter       float64 `json:"padding_outer,omitempty"`
	Round              bool    `json:"round,omitempty"`
	Sort               string  `json:"sort,omitempty"`
	NodeRadius         float64 `json:"node_radius,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ShowLabels bool   `json:"show_labels,omitempty"`
	Engine     string `json:"engine,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the tree with the
	// given content hash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from a layout with
	// the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
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
