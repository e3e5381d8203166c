// Package assets provides fingerprinted asset resolution and publishing for
// island script bundles.
//
// A build step produces a manifest.json mapping source bundle names to
// their fingerprinted (content-hashed) versions:
//
//	{
//	  "counter.js": "counter.a1b2c3d4.js",
//	  "cart.js": "cart.e5f6a7b8.js"
//	}
//
// The manifest feeds island descriptors at render time:
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/islands/")
//
//	island := &vdom.Island{ID: "counter", ScriptURL: resolver.Asset("counter.js")}
//	// renders url="/islands/counter.a1b2c3d4.js"
//
// Publisher uploads bundles to S3 under their fingerprinted names, so they
// can be served immutable with far-future cache headers.
package assets

import (
	"encoding/json"
	"os"
	"sync"
)

// Manifest holds the mapping from source asset paths to fingerprinted
// paths. It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
// Use Load to create a manifest from a JSON file.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest.json file and returns a Manifest.
// The file is expected to be JSON: {"source.js": "source.abc123.js"}
//
// If the file does not exist or cannot be read, an error is returned.
// In development, ignore the error and use NewPassthroughResolver.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted path for the given source path.
// If not found, returns the original path unchanged.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has returns true if the manifest contains the given source path.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or updates an entry. The publisher records fingerprinted names
// through this as it uploads.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}

// MarshalJSON encodes the manifest as its entries object.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.All())
}
