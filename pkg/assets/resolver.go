package assets

// Resolver provides asset path resolution.
// It combines manifest lookup with path prefixing.
type Resolver interface {
	// Asset resolves a source asset path to its full URL path,
	// including any configured prefix and fingerprinted filename.
	//
	// Example:
	//   resolver.Asset("counter.js") → "/islands/counter.a1b2c3d4.js"
	Asset(source string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with an optional path
// prefix prepended to all resolved paths.
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/islands/")
//	resolver.Asset("counter.js") // "/islands/counter.a1b2c3d4.js"
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

// passthroughResolver returns paths unchanged apart from the prefix.
type passthroughResolver struct {
	prefix string
}

// NewPassthroughResolver creates a Resolver that performs no manifest
// lookup. Useful in development where bundles are served unfingerprinted.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthroughResolver{prefix: prefix}
}

func (r *passthroughResolver) Asset(source string) string {
	return r.prefix + source
}
