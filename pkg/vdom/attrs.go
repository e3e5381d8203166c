package vdom

import "github.com/isla-dev/isla/pkg/dom"

// AttrKind discriminates attribute variants.
type AttrKind uint8

const (
	// AttrStatic is a plain attribute value needing no reactivity.
	AttrStatic AttrKind = iota

	// AttrDynamic is an attribute whose value is derived from signals.
	// The client wraps the assignment in an effect bound to the exact node.
	AttrDynamic

	// AttrHandler is a direct event handler binding.
	AttrHandler

	// AttrAction is a declarative event binding naming a registered action.
	// It is resolved to a handler lookup at hydration time.
	AttrAction
)

// String returns the string representation of the AttrKind.
func (k AttrKind) String() string {
	switch k {
	case AttrStatic:
		return "Static"
	case AttrDynamic:
		return "Dynamic"
	case AttrHandler:
		return "Handler"
	case AttrAction:
		return "Action"
	default:
		return "Unknown"
	}
}

// Attr is a closed union over attribute variants. For AttrStatic and
// AttrDynamic, Name is the attribute name. For AttrHandler and AttrAction,
// Name is the DOM event type ("click", "input", ...).
type Attr struct {
	Name string
	Kind AttrKind

	// AttrStatic
	Value string

	// AttrDynamic
	ValueFn func() string

	// AttrHandler
	Handler func(*dom.Event)

	// AttrAction: action identifier, optionally with an encoded payload
	// appended by the action codec.
	Action string
}

// Static creates a plain attribute.
func Static(name, value string) Attr {
	return Attr{Name: name, Kind: AttrStatic, Value: value}
}

// Dynamic creates an attribute whose value follows the given derivation.
func Dynamic(name string, fn func() string) Attr {
	return Attr{Name: name, Kind: AttrDynamic, ValueFn: fn}
}

// On creates a direct event handler binding.
func On(event string, handler func(*dom.Event)) Attr {
	return Attr{Name: event, Kind: AttrHandler, Handler: handler}
}

// OnAction creates a declarative event binding that resolves the named
// action through the action registry at hydration time.
func OnAction(event, action string) Attr {
	return Attr{Name: event, Kind: AttrAction, Action: action}
}

// Class is shorthand for Static("class", v).
func Class(v string) Attr {
	return Static("class", v)
}

// ID is shorthand for Static("id", v).
func ID(v string) Attr {
	return Static("id", v)
}

// attrsByName returns the element's attributes indexed by name, with handler
// and action bindings excluded. Used when comparing expectations against
// rendered markup.
func attrsByName(attrs []Attr) map[string]Attr {
	m := make(map[string]Attr, len(attrs))
	for _, a := range attrs {
		if a.Kind == AttrHandler || a.Kind == AttrAction {
			continue
		}
		m[a.Name] = a
	}
	return m
}

// StaticAttrs returns the element's non-handler attributes indexed by name.
func (v *VNode) StaticAttrs() map[string]Attr {
	return attrsByName(v.Attrs)
}

// HasHandlers reports whether the element carries handler or action bindings.
func (v *VNode) HasHandlers() bool {
	for _, a := range v.Attrs {
		if a.Kind == AttrHandler || a.Kind == AttrAction {
			return true
		}
	}
	return false
}
