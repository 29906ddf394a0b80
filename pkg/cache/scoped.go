package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis database without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer selects
// the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// QueryKey generates a prefixed key for a provider response.
func (k *ScopedKeyer) QueryKey(endpoint, query string) string {
	return k.prefix + k.inner.QueryKey(endpoint, query)
}
