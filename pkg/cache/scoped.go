package cache

// ScopedKeyer namespaces every key of an inner Keyer, so that the CLI and a
// server, or several test runs, can share one backend without collisions.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Inner.LayoutKey(treeHash, opts)
}

func (k ScopedKeyer) ArtifactKey(renderHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(renderHash, opts)
}

var _ Keyer = ScopedKeyer{}
