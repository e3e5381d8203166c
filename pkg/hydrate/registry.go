package hydrate

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/isla-dev/isla/pkg/vdom"
)

// Component rebuilds an island's client VNode tree from its serialized
// state. It is the Go-side analogue of the hydrate(element, state, id)
// entry point an island script module exports: the engine resolves the
// component by the island's script URL, hands it the deserialized state,
// and walks the returned tree against the server markup.
type Component func(state json.RawMessage) (*vdom.VNode, error)

// Registry maps island script URLs to their components. It is safe for
// concurrent use; registration typically happens at program start.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// Register binds a component to a script URL. Later registrations for the
// same URL replace earlier ones.
func (r *Registry) Register(url string, c Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[url] = c
}

// Resolve looks up the component for a script URL.
func (r *Registry) Resolve(url string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[url]
	return c, ok
}

// URLs returns the registered script URLs in sorted order.
func (r *Registry) URLs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	urls := make([]string, 0, len(r.components))
	for u := range r.components {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
