package action

import (
	"strings"
	"sync"

	"github.com/isla-dev/isla/pkg/dom"
)

// Handler handles one action invocation. args is nil for references that
// carry no payload.
type Handler func(ev *dom.Event, args map[string]any)

// Registry maps action names to handlers. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to an action name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Resolve looks up a handler by name.
func (r *Registry) Resolve(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Resolver adapts the registry to the binder's action hook. References have
// the form "name" or "name:token"; tokens are decoded with the codec, and a
// reference that fails to decode resolves to nothing, leaving the binding
// inert rather than attaching a handler with forged arguments.
func (r *Registry) Resolver(c *Codec) func(ref string) (func(*dom.Event), bool) {
	return func(ref string) (func(*dom.Event), bool) {
		name, token, hasToken := strings.Cut(ref, ":")

		h, ok := r.Resolve(name)
		if !ok {
			return nil, false
		}

		var args map[string]any
		if hasToken && token != "" {
			if c == nil {
				return nil, false
			}
			if err := c.Decode(token, false, &args); err != nil {
				return nil, false
			}
		}

		return func(ev *dom.Event) { h(ev, args) }, true
	}
}
