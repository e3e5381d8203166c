// Package mount renders VNode trees onto live DOM nodes with fine-grained
// reactive bindings.
//
// Unlike tree-reconciliation frameworks, mount performs no virtual-DOM diff:
// every DynamicText node and every Dynamic attribute gets its own minimal
// effect that patches exactly one node or attribute in place when a signal
// changes. Structural reactivity is limited to the combinators that declare
// it: Show swaps a region, For reconciles a keyed list, Async swaps in a
// resolved subtree.
//
// The Binder type is shared with the hydrate package: hydration attaches the
// same bindings, but onto nodes recovered from server-rendered markup
// instead of freshly created ones.
package mount
