package hydrate

import (
	"sync"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/vdom"
)

// hydratedAttr marks an island element whose hydration completed. Tests and
// the trigger scheduler use it to guarantee idempotence.
const hydratedAttr = "data-hydrated"

// Island is one hydration unit: a server-rendered boundary element plus the
// state machine that makes it interactive. Islands are independent; a
// failure in one never blocks or corrupts its siblings.
type Island struct {
	// ID is the page-unique island identity.
	ID string

	// ScriptURL identifies the component module for this island.
	ScriptURL string

	// Trigger is when hydration should begin.
	Trigger vdom.Trigger

	// StateAttr is the raw state attribute: "#scriptId", "url:path",
	// an inline JSON literal, or empty.
	StateAttr string

	el *dom.Node

	mu         sync.Mutex
	phase      Phase
	mismatches []Mismatch
	err        error
	dispose    func()
}

// Element returns the island's boundary element.
func (i *Island) Element() *dom.Node {
	return i.el
}

// Phase returns the current hydration phase.
func (i *Island) Phase() Phase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// Err returns the failure cause for islands in the failed phase.
func (i *Island) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Mismatches returns the divergences recorded during the walk.
func (i *Island) Mismatches() []Mismatch {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]Mismatch, len(i.mismatches))
	copy(out, i.mismatches)
	return out
}

// Dispose tears down the island's bindings and clears its hydration marker,
// returning it to the discovered phase. The server markup stays in place.
func (i *Island) Dispose() {
	i.mu.Lock()
	dispose := i.dispose
	i.dispose = nil
	i.phase = PhaseDiscovered
	i.mismatches = nil
	i.err = nil
	i.mu.Unlock()

	if dispose != nil {
		dispose()
	}
	i.el.RemoveAttr(hydratedAttr)
}

func (i *Island) setPhase(p Phase) {
	i.mu.Lock()
	i.phase = p
	i.mu.Unlock()
}
