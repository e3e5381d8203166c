package isla

// Listener is anything that can be notified when a dependency changes.
// This interface is implemented by memos, effects and subscriptions.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For memos, this invalidates the cached value.
	// For effects, this schedules the effect to re-run.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function registered via OnCleanup.
// It is called before the enclosing effect re-runs and when the enclosing
// owner or effect is disposed, whichever happens first.
type Cleanup func()

// pullable is implemented by memos. During the invalidation phase of a flush,
// pullable listeners are marked dirty (and propagate dirtiness downstream)
// before any effect runs, so effects always pull fresh values.
type pullable interface {
	Listener
	addSource(source *signalBase)
}

// pendingRunner is implemented by listeners that do real work when their
// dependencies settle: effects re-run their body, subscriptions invoke their
// callback. The flush run phase fires each distinct pendingRunner once.
type pendingRunner interface {
	Listener
	runPending()
}
