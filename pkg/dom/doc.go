// Package dom provides an in-memory document object model for the isla
// framework: elements, text nodes, attributes, event listeners and event
// dispatch with bubbling.
//
// The mount package renders VNode trees onto dom nodes; the hydrate package
// re-walks server-emitted markup (parsed via ParseDocument/ParseFragment)
// and attaches interactivity to the existing nodes.
//
// Unlike the reactive core, the dom package is deliberately not safe for
// concurrent use: the runtime's scheduling model is a single logical thread
// interleaved via the schedule.Loop, so all DOM access happens from one
// goroutine and no locking is needed.
package dom
