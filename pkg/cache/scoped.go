package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts can share a
// backend without colliding. The server scopes its keys apart from local
// CLI runs, and a multi-tenant deployment can scope per user.
//
// Example usage:
//
//	// Server-side keys, isolated from local conversions
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//
//	// Shared keys for local conversions
//	localKeyer := NewDefaultKeyer()
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

// CellKey generates a prefixed key for component cell caching.
func (k *ScopedKeyer) CellKey(technology, ctype string, params map[string]any) string {
	return k.prefix + k.inner.CellKey(technology, ctype, params)
}

// LayoutKey generates a prefixed key for resolved layout caching.
func (k *ScopedKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(designHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
