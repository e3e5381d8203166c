package vdom

import (
	"context"

	"github.com/isla-dev/isla/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement     VKind = iota // <div>, <button>, etc.
	KindText                     // Static text node
	KindDynamicText              // Text derived from signals, rebound on change
	KindFragment                 // Grouping without wrapper
	KindShow                     // Conditional subtree
	KindFor                      // Keyed list
	KindIsland                   // Hydration boundary
	KindAsync                    // Subtree awaiting a producer
	KindRaw                      // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindDynamicText:
		return "DynamicText"
	case KindFragment:
		return "Fragment"
	case KindShow:
		return "Show"
	case KindFor:
		return "For"
	case KindIsland:
		return "Island"
	case KindAsync:
		return "Async"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Producer resolves an async subtree. It runs off the render loop; the
// context is canceled when the enclosing owner is disposed.
type Producer func(ctx context.Context) (*VNode, error)

// Event is the event type handlers receive.
type Event = dom.Event

// VNode is an immutable description of UI structure. Renderers derive HTML
// or live DOM from it; they never mutate it in place.
//
// VNode is a closed tagged union: the Kind field selects which variant
// fields are meaningful, and renderers switch exhaustively over Kind. New
// node kinds are added by extending the union, never via embedding.
type VNode struct {
	Kind VKind

	// Element
	Tag      string
	Attrs    []Attr
	Children []*VNode
	Key      string // Reconciliation key

	// Text / Raw
	Text string

	// DynamicText
	TextFn func() string

	// Show
	Cond     func() bool
	Child    *VNode
	Fallback *VNode // Also the placeholder for Async

	// For
	ItemsFn  func() []any
	KeyFn    func(any) string
	RenderFn func(any) *VNode

	// Island
	Island *Island

	// Async
	Produce Producer
}

// El creates an element node. Parts may be Attr values, *VNode children,
// strings (shorthand for text nodes), or nil (skipped).
func El(tag string, parts ...any) *VNode {
	n := &VNode{Kind: KindElement, Tag: tag}
	for _, part := range parts {
		switch p := part.(type) {
		case nil:
			// skip
		case Attr:
			n.Attrs = append(n.Attrs, p)
		case *VNode:
			if p != nil {
				n.Children = append(n.Children, p)
			}
		case string:
			n.Children = append(n.Children, Text(p))
		case []*VNode:
			for _, c := range p {
				if c != nil {
					n.Children = append(n.Children, c)
				}
			}
		}
	}
	return n
}

// Text creates a static text node.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

// DynamicText creates a text node whose content is derived from signals.
// On the client the evaluation is wrapped in an effect so later signal
// changes patch that exact text node in place. On the server it is
// evaluated once, untracked.
func DynamicText(fn func() string) *VNode {
	return &VNode{Kind: KindDynamicText, TextFn: fn}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Children: children}
}

// Show renders child while cond() is true, and nothing otherwise.
func Show(cond func() bool, child *VNode) *VNode {
	return &VNode{Kind: KindShow, Cond: cond, Child: child}
}

// ShowElse is Show with an explicit fallback subtree.
func ShowElse(cond func() bool, child, fallback *VNode) *VNode {
	return &VNode{Kind: KindShow, Cond: cond, Child: child, Fallback: fallback}
}

// For renders a keyed list. On source change the client reconciles by key:
// nodes for unchanged keys are reused, nodes for new keys are created, and
// nodes for dropped keys are removed.
func For(items func() []any, key func(any) string, render func(any) *VNode) *VNode {
	return &VNode{Kind: KindFor, ItemsFn: items, KeyFn: key, RenderFn: render}
}

// Async renders fallback until the producer resolves the subtree.
// Cancellation is scoped to the enclosing owner's disposal.
func Async(produce Producer, fallback *VNode) *VNode {
	return &VNode{Kind: KindAsync, Produce: produce, Fallback: fallback}
}

// Raw creates a raw HTML node rendered without escaping.
// Only use with trusted content.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// WithKey sets the reconciliation key and returns the node.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}
