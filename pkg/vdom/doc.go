// Package vdom provides the virtual node model for the isla framework.
//
// A VNode tree is an immutable description of UI structure. The render
// package derives server HTML from it; the mount package derives live DOM
// with fine-grained reactive bindings; the hydrate package walks it in
// lockstep with server-rendered DOM to attach interactivity.
//
// # Core Types
//
// VNode is a closed tagged union over Element, Text, DynamicText, Fragment,
// Show, For, Island, Async and Raw variants, discriminated by Kind. Attr is
// a closed union over Static, Dynamic, Handler and Action variants.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"),
//	    H1(Text("Title")),
//	    DynamicText(func() string { return count.Get() }),
//	    Button(On("click", increment), Text("+")),
//	)
//
// # Islands
//
// Island describes a hydration boundary: an id unique per page, the module
// URL exporting its hydrate entry, a trigger (load/idle/visible/media/none)
// and a serialized state source (inline JSON, a sibling script tag, or a
// URL). The island markup contract is shared between the render package,
// which emits it, and the schedule/hydrate packages, which consume it.
package vdom
