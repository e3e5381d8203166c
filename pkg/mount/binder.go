package mount

import (
	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

// Binder installs reactive bindings onto live DOM nodes. It is shared by the
// fresh-mount path and the hydration engine: both attach the same per-node
// effects, they just obtain the target nodes differently.
type Binder struct {
	// Actions resolves declarative action bindings by name.
	// nil means action bindings are skipped.
	Actions func(name string) (func(*dom.Event), bool)

	// Dispatch schedules work onto the host loop. Used by Async producers
	// to hand their result back to the single-threaded DOM. nil means the
	// callback runs on the producing goroutine.
	Dispatch func(func())
}

// Do runs fn on the host loop via the configured dispatcher, or inline when
// no dispatcher is set.
func (b *Binder) Do(fn func()) {
	b.dispatch(fn)
}

// dispatch runs fn via the configured dispatcher.
func (b *Binder) dispatch(fn func()) {
	if b != nil && b.Dispatch != nil {
		b.Dispatch(fn)
		return
	}
	fn()
}

// BindElement attaches handler listeners, action listeners and dynamic
// attribute effects to an existing element. Listener removals and effect
// disposal are tied to the current owner.
func (b *Binder) BindElement(el *dom.Node, attrs []vdom.Attr) {
	for _, a := range attrs {
		switch a.Kind {
		case vdom.AttrStatic:
			// Already present in server markup; on fresh mounts the caller
			// sets it when creating the element.
		case vdom.AttrDynamic:
			b.bindDynamicAttr(el, a)
		case vdom.AttrHandler:
			b.addListener(el, a.Name, a.Handler)
		case vdom.AttrAction:
			if b == nil || b.Actions == nil {
				continue
			}
			if handler, ok := b.Actions(a.Action); ok {
				b.addListener(el, a.Name, handler)
			}
		}
	}
}

// bindDynamicAttr wraps the attribute assignment in its own minimal effect,
// so a later signal change patches exactly this attribute on this node.
func (b *Binder) bindDynamicAttr(el *dom.Node, a vdom.Attr) {
	isla.CreateEffect(func() {
		el.SetAttr(a.Name, a.ValueFn())
	})
}

// BindDynamicText wraps the text assignment in its own minimal effect bound
// to exactly this text node.
func (b *Binder) BindDynamicText(text *dom.Node, fn func() string) {
	isla.CreateEffect(func() {
		text.Data = fn()
	})
}

// BindHandler attaches a single event listener to an existing element.
// Used by the hydration engine, which walks attributes itself so it can
// compare expectations against server markup before binding.
func (b *Binder) BindHandler(el *dom.Node, event string, handler func(*dom.Event)) {
	b.addListener(el, event, handler)
}

// ResolveAction looks up a declarative action handler by name. Returns
// false when no action table is configured or the name is unknown.
func (b *Binder) ResolveAction(name string) (func(*dom.Event), bool) {
	if b == nil || b.Actions == nil {
		return nil, false
	}
	return b.Actions(name)
}

// addListener registers the listener and removes it when the owner scope is
// disposed, keeping the signal graph and the DOM listener list in sync.
func (b *Binder) addListener(el *dom.Node, event string, handler func(*dom.Event)) {
	remove := el.AddEventListener(event, handler)
	isla.OnCleanup(remove)
}
