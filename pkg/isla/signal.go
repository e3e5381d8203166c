package isla

import (
	"sync"
	"sync/atomic"
)

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] and Memo[T] to share subscription logic.
type signalBase struct {
	id uint64

	// version increments on every accepted write.
	version atomic.Uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// subscribe adds a listener to this signal's subscribers.
// Deduplicates by listener ID to prevent double-subscription.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers notifies all subscribers that this signal changed.
// Uses copy-before-notify pattern to avoid holding locks during notification.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if deliveryDeferred() {
		// Inside a batch or flush: queue for the coalesced flush pass.
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
	} else {
		for _, sub := range subs {
			sub.MarkDirty()
		}
	}
}

// getID returns the unique identifier for this signal.
func (s *signalBase) getID() uint64 {
	return s.id
}

// track subscribes the current listener, if any, and records this signal as
// one of the listener's sources so re-runs can unsubscribe cleanly.
func (s *signalBase) track() {
	listener := getCurrentListener()
	if listener == nil {
		return
	}

	s.subscribe(listener)

	if e, ok := listener.(*Effect); ok {
		e.addSource(s)
	}
	if p, ok := listener.(pullable); ok {
		p.addSource(s)
	}
}

// Signal is a reactive value container.
// Reading a Signal's value during a tracked computation (memo computation or
// effect execution) automatically subscribes the current listener to receive
// notifications when the value changes.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to decide whether a write changed
	// the value. If nil, only directly comparable primitive values are
	// compared; everything else notifies unconditionally.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
// Signals are not owner-scoped: disposing the creating owner severs effect
// and memo subscriptions but leaves the signal itself writable.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base: signalBase{
			id: nextID(),
		},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
// If called during a tracked computation, the current listener will be
// notified when this signal's value changes. Outside a tracked computation
// this is a plain read.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track dependency after releasing the value lock to prevent deadlock.
	s.base.track()

	return value
}

// Peek returns the current value without subscribing.
// This is the escape hatch for reading a value without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the signal's value and notifies subscribers if the value changed.
// The write is a no-op only when the old and new values are trivially equal
// (primitive comparison or a configured equality function).
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
		s.base.version.Add(1)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update atomically reads and updates the signal's value.
// The function receives the current value and returns the new value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
		s.base.version.Add(1)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// notify wraps subscriber notification in an implicit single-write batch so
// that memo invalidation always completes before dependent effects run, even
// for unbatched writes. This is what makes diamond dependencies glitch-free.
func (s *Signal[T]) notify() {
	incrementBatchDepth()
	s.base.notifySubscribers()
	if decrementBatchDepth() {
		flushPending()
	}
}

// Subscribe registers a callback invoked with the new value after every
// accepted write. The callback runs outside any tracking context. The
// returned function removes the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	sub := &subscription[T]{
		id:  nextID(),
		src: s,
		fn:  fn,
	}
	s.base.subscribe(sub)

	return func() {
		if sub.stopped.Swap(true) {
			return
		}
		s.base.unsubscribe(sub)
	}
}

// WithEquals returns the signal configured with a custom equality function.
// This is useful for composite types where a cheap domain-specific comparison
// is available.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Version returns the current write version. It increments on every accepted
// Set/Update and never decreases.
func (s *Signal[T]) Version() uint64 {
	return s.base.version.Load()
}

// equals checks if two values are equal using the configured equality function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return trivialEquals(a, b)
}

// trivialEquals compares directly comparable primitive values. Composite
// values are never considered equal: the conservative policy is to notify
// unless the values are trivially equal.
func trivialEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return false
	}
}

// subscription delivers new values to a plain callback.
// It participates in batch coalescing like any other listener.
type subscription[T any] struct {
	id      uint64
	src     *Signal[T]
	fn      func(T)
	stopped atomic.Bool
}

// MarkDirty implements the Listener interface.
func (s *subscription[T]) MarkDirty() {
	s.runPending()
}

// ID implements the Listener interface.
func (s *subscription[T]) ID() uint64 {
	return s.id
}

// runPending invokes the callback with the current value, untracked.
func (s *subscription[T]) runPending() {
	if s.stopped.Load() {
		return
	}
	s.fn(s.src.Peek())
}
