package cache

// ScopedKeyer wraps a Keyer with a prefix so that several catalogs or
// deployments can share one backend without colliding.
//
// Example usage:
//
//	// Keys for routes computed against a custom catalog
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "catalog:"+catalogHash+":")
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

// RouteKey generates a prefixed route key.
func (k *ScopedKeyer) RouteKey(problemHash string) string {
	return k.prefix + k.inner.RouteKey(problemHash)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(configHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(configHash, opts)
}
