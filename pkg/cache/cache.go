// Package cache provides caching for computed layouts, tile splits, and
// rendered artifacts.
//
// The [Cache] interface abstracts the storage backend:
//   - FileCache: hash-sharded files for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Cache keys are built by a [Keyer] so that CLI, API, and tests agree on
// the key layout. Keys embed a content hash of the source image plus the
// options that influenced the computation, so a changed focus rectangle
// or grid never serves a stale entry.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key category.
const (
	// DefaultLayoutTTL is how long computed layer partitions are kept.
	DefaultLayoutTTL = 24 * time.Hour

	// DefaultArtifactTTL is how long rendered artifacts are kept.
	DefaultArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures the inputs that influence a layer partition.
type LayoutKeyOpts struct {
	FocusX, FocusY int
	Width, Height  int
	MaxWidth       int
	MaxHeight      int
}

// TileKeyOpts captures the inputs that influence a tile split.
type TileKeyOpts struct {
	Rows, Cols int
	TileWidth  int
	TileHeight int
}

// ArtifactKeyOpts captures the inputs that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
	Dim    float64
}

// Keyer builds cache keys for the different cached value categories.
type Keyer interface {
	// LayoutKey returns the key for a layer partition of the image with
	// the given content hash.
	LayoutKey(imageHash string, opts LayoutKeyOpts) string

	// TileKey returns the key for a tile split of the image with the
	// given content hash.
	TileKey(imageHash string, opts TileKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact derived from
	// the layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout shared by CLI and API.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layer partition caching.
func (k *DefaultKeyer) LayoutKey(imageHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", imageHash, opts)
}

// TileKey generates a key for tile split caching.
func (k *DefaultKeyer) TileKey(imageHash string, opts TileKeyOpts) string {
	return hashKey("tile", imageHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
