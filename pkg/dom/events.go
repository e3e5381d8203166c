package dom

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event type ("click", "input", ...).
	Type string

	// Target is the node the event was dispatched on.
	Target *Node

	// CurrentTarget is the node whose listener is currently running.
	CurrentTarget *Node

	// Value carries event payload data (e.g. an input's value).
	Value string

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from bubbling further.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault marks the event's default action as prevented.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// listener is a registered event listener.
type listener struct {
	typ string
	fn  func(*Event)
}

// AddEventListener registers fn for events of the given type.
// The returned function removes exactly this registration.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	l := &listener{typ: typ, fn: fn}
	n.listeners = append(n.listeners, l)

	return func() {
		for i, existing := range n.listeners {
			if existing == l {
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for the given
// event type. Used by hydration idempotence checks and tests.
func (n *Node) ListenerCount(typ string) int {
	count := 0
	for _, l := range n.listeners {
		if l.typ == typ {
			count++
		}
	}
	return count
}

// DispatchEvent dispatches an event at this node and bubbles it through the
// ancestor chain until StopPropagation is called or the root is reached.
func (n *Node) DispatchEvent(e *Event) {
	e.Target = n

	for node := n; node != nil; node = node.parent {
		e.CurrentTarget = node

		// Copy before invoking: a listener may unregister itself.
		ls := make([]*listener, len(node.listeners))
		copy(ls, node.listeners)

		for _, l := range ls {
			if l.typ == e.Type {
				l.fn(e)
			}
		}

		if e.stopped {
			return
		}
	}
}

// Click dispatches a click event at the node. Test convenience.
func (n *Node) Click() {
	n.DispatchEvent(&Event{Type: "click"})
}
