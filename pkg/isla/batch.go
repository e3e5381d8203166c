package isla

// Batch groups multiple signal updates into a single notification phase.
// All signal updates within the batch function are collected, deduplicated,
// and then all affected listeners are notified once when the batch completes.
//
// Batches can be nested; nesting is reference-counted and notifications only
// fire when the outermost batch completes.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	    age.Set(30)
//	})
//	// Each affected effect runs once with all three changes visible
func Batch(fn func()) {
	BatchStart()
	defer BatchEnd()
	fn()
}

// BatchStart opens a batch window. Signal writes after BatchStart queue their
// notifications until the matching BatchEnd. Calls nest by reference count.
func BatchStart() {
	incrementBatchDepth()
}

// BatchEnd closes the innermost batch window. The outermost BatchEnd flushes
// all queued notifications in one pass. An unmatched BatchEnd (no prior
// BatchStart) is a programmer error; it flushes whatever is pending rather
// than corrupting the refcount.
func BatchEnd() {
	ctx := getTrackingContext()
	if ctx.batchDepth == 0 {
		flushPending()
		return
	}
	if decrementBatchDepth() {
		flushPending()
	}
}

// flushPending drains queued notifications in two phases per round.
//
// Invalidation phase: memos (pullable listeners) are marked dirty first and
// their dirtiness propagates downstream before any effect runs. Because memos
// recompute lazily on read, this ordering is equivalent to a topological sort
// over the dependency graph: an effect never observes a stale intermediate
// value of one of its sources.
//
// Run phase: each distinct remaining listener fires exactly once, regardless
// of how many of its sources changed. Writes performed inside effect bodies
// queue further rounds until the graph settles.
func flushPending() {
	ctx := getTrackingContext()
	if ctx.flushing {
		// A flush pass higher in the call stack will pick up the new work.
		return
	}
	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	for {
		updates := drainPendingUpdates()
		if len(updates) == 0 {
			return
		}

		var terminals []Listener
		for len(updates) > 0 {
			for _, l := range updates {
				if _, ok := l.(pullable); ok {
					l.MarkDirty()
				} else {
					terminals = append(terminals, l)
				}
			}
			// Memo invalidation may have queued more listeners.
			updates = drainPendingUpdates()
		}

		seen := make(map[uint64]bool, len(terminals))
		for _, l := range terminals {
			if seen[l.ID()] {
				continue
			}
			seen[l.ID()] = true

			if r, ok := l.(pendingRunner); ok {
				r.runPending()
			} else {
				l.MarkDirty()
			}
		}
	}
}

// Untracked runs a function without tracking signal reads as dependencies.
// This is useful when a computation needs to read values without creating
// subscriptions.
//
// Note: for single signal reads, signal.Peek() is more efficient and clearer
// in intent.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads a signal's value without creating a dependency.
// This is a convenience function equivalent to signal.Peek().
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
