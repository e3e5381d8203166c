// Package render provides server-side rendering (SSR) for isla VNode trees.
//
// The render package converts VNode trees into HTML strings or streams,
// handling all aspects of producing valid, secure HTML output including:
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Static expansion of Show/For from current signal values
//   - One-shot untracked evaluation of DynamicText and Dynamic attributes
//   - The island markup contract and sibling state script tags
//
// Server rendering is stateless snapshot rendering: no effect survives the
// render, and the emitted markup is exactly what the hydration engine later
// walks against the client VNode tree.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, node)
//
// # Islands
//
// KindIsland nodes render as
//
//	<isla-island id="…" url="…" trigger="…" state="…">…</isla-island>
//
// with the SSR children inside the boundary. Script-ref state is emitted as
// a sibling <script type="application/json"> tag whose body is registered
// with SetStateScript before rendering. Island ids must be unique within a
// page; the renderer returns an error on duplicates.
package render
