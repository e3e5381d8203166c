package isla

import (
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that runs when its dependencies
// change. Effects run immediately when created, and re-run whenever any
// signal or memo they read during execution changes.
//
// Cleanups registered with OnCleanup during the effect body run before the
// next re-run and when the effect is disposed, whichever comes first.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func()

	// cleanups registered during the last run, executed LIFO.
	cleanups   []Cleanup
	cleanupsMu sync.Mutex

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect.
	owner *Owner

	// untracked effects never re-subscribe; used by OnMount.
	untracked bool

	// pending indicates the effect is queued for re-run.
	pending atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// MarkDirty schedules the effect to re-run.
// Outside a batch the re-run happens synchronously before MarkDirty returns.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// CAS so the effect is queued at most once per flush.
	if e.pending.CompareAndSwap(false, true) {
		queuePendingUpdate(e)
		if !deliveryDeferred() {
			flushPending()
		}
	}
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// runPending implements pendingRunner; the flush run phase calls it once per
// distinct effect.
func (e *Effect) runPending() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)
	e.run()
}

// run executes the effect body.
// Called on initial creation and when dependencies change.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	// Run cleanups from the previous run, LIFO.
	e.runCleanups()

	// Unsubscribe from old sources; the new run re-derives them.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	var listener Listener
	if !e.untracked {
		listener = e
	}
	oldListener := setCurrentListener(listener)
	oldEffect := setCurrentEffect(e)

	e.fn()

	setCurrentEffect(oldEffect)
	setCurrentListener(oldListener)
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// addCleanup registers a cleanup for the current run.
func (e *Effect) addCleanup(fn Cleanup) {
	if e.disposed.Load() {
		return
	}
	e.cleanupsMu.Lock()
	e.cleanups = append(e.cleanups, fn)
	e.cleanupsMu.Unlock()
}

// runCleanups runs and clears the registered cleanups in LIFO order.
func (e *Effect) runCleanups() {
	e.cleanupsMu.Lock()
	cleanups := e.cleanups
	e.cleanups = nil
	e.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Dispose cleans up the effect and unsubscribes from all sources.
// Disposal is idempotent.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	e.runCleanups()

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// CreateEffect creates and runs a new effect within the current owner scope.
// The effect body runs immediately and re-runs when any signal or memo it
// reads changes. The returned effect's Dispose severs its subscriptions and
// runs outstanding cleanups.
//
// Example:
//
//	CreateEffect(func() {
//	    fmt.Println("Count is:", count.Get())
//	    OnCleanup(func() { fmt.Println("before re-run or dispose") })
//	})
func CreateEffect(fn func()) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	// Run immediately
	e.run()

	return e
}

// OnCleanup registers a cleanup function.
// Inside an effect body, the cleanup runs before the effect's next re-run or
// on disposal, whichever happens first, and exactly once per registration.
// Outside an effect body it attaches to the current owner and runs on
// disposal. With no effect and no owner, or after the owner has been
// disposed, the call is silently ignored so teardown stays order-independent.
func OnCleanup(fn Cleanup) {
	if e := getCurrentEffect(); e != nil {
		e.addCleanup(fn)
		return
	}
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// OnMount runs fn exactly once, immediately, with no tracked dependencies.
// It is implemented as an effect that never re-subscribes, so cleanups
// registered inside still run on owner disposal.
func OnMount(fn func()) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:        nextID(),
		fn:        fn,
		owner:     owner,
		untracked: true,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	e.run()

	return e
}

var _ pendingRunner = (*Effect)(nil)
