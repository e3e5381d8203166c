package isla

import (
	"sync"
	"sync/atomic"
)

// Owner represents a reactive scope that owns effects and memos.
// When an Owner is disposed, all effects, memos and child owners it contains
// are also disposed. This ensures proper cleanup and prevents leaked
// subscriptions.
//
// Owners form a hierarchy: a child Owner's lifetime is strictly bounded by
// its parent's. Disposal cascades depth-first, children before the parent's
// own cleanups.
type Owner struct {
	id uint64

	// parent is the parent Owner in the hierarchy.
	// nil for a root Owner.
	parent *Owner

	// children are child Owners (nested scopes).
	children   []*Owner
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// memos owned by this scope; detached on disposal.
	memos   []disposable
	memosMu sync.Mutex

	// cleanups are manual cleanup functions registered via OnCleanup.
	cleanups   []Cleanup
	cleanupsMu sync.Mutex

	// disposed indicates whether this Owner has been disposed.
	disposed atomic.Bool
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is automatically registered as a child of the parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// addChild registers a child Owner.
func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

// removeChild removes a child Owner from this Owner's children.
func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this Owner.
// The effect will be disposed when this Owner is disposed.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// registerMemo adds a memo to this Owner so its subscriptions are severed
// on disposal.
func (o *Owner) registerMemo(m disposable) {
	if o.disposed.Load() {
		return
	}

	o.memosMu.Lock()
	defer o.memosMu.Unlock()
	o.memos = append(o.memos, m)
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
// Cleanups run in LIFO registration order. Registering against a disposed
// owner is silently ignored so teardown is order-independent.
func (o *Owner) OnCleanup(fn Cleanup) {
	if o.disposed.Load() {
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose disposes this Owner and all its children, effects and cleanups.
// Children are disposed in reverse creation order, then effects, then the
// owner's own cleanups in LIFO order. Disposal is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	// Remove from parent's children list
	if o.parent != nil {
		o.parent.removeChild(o)
	}

	// Dispose children depth-first, in reverse order
	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	// Dispose effects
	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.Dispose()
	}

	// Detach memos from their sources
	o.memosMu.Lock()
	memos := o.memos
	o.memos = nil
	o.memosMu.Unlock()

	for _, m := range memos {
		m.detach()
	}

	// Run cleanups in reverse registration order
	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// CreateRoot runs fn under a fresh root Owner and returns fn's result.
// The dispose function passed to fn (also safe to call later) disposes the
// root and everything created beneath it.
//
// Example:
//
//	dispose := isla.CreateRoot(func(dispose func()) func() {
//	    isla.CreateEffect(func() { ... })
//	    return dispose
//	})
//	defer dispose()
func CreateRoot[T any](fn func(dispose func()) T) T {
	owner := NewOwner(getCurrentOwner())

	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)

	return fn(owner.Dispose)
}

// GetOwner returns the current owner, or nil if none is set.
func GetOwner() *Owner {
	return getCurrentOwner()
}

// HasOwner reports whether an owner scope is current.
func HasOwner() bool {
	return getCurrentOwner() != nil
}
