package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful on shared deployments where different users or projects
// need separate cache namespaces.
//
// Example usage:
//
//	// Per-user keys for private images
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared assets
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layer partition caching.
func (k *ScopedKeyer) LayoutKey(imageHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(imageHash, opts)
}

// TileKey generates a prefixed key for tile split caching.
func (k *ScopedKeyer) TileKey(imageHash string, opts TileKeyOpts) string {
	return k.prefix + k.inner.TileKey(imageHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
