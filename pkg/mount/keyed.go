package mount

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

// keyedEntry is one rendered list item: the top-level DOM nodes it produced
// and the owner scope its effects live under.
type keyedEntry struct {
	nodes []*dom.Node
	owner *isla.Owner
}

// mountFor mounts a keyed list region and reconciles it by key on every
// items change: DOM nodes for unchanged keys are reused (moved if their
// position changed), nodes are created only for new keys, and removed for
// keys no longer present. This is a keyed diff, not a generic VDOM diff:
// item subtrees are never re-walked for content changes; their own dynamic
// bindings handle that.
func (m *mounter) mountFor(parent, before *dom.Node, node *vdom.VNode) {
	end := dom.CreateText("")
	parent.InsertBefore(end, before)

	entries := make(map[string]*keyedEntry)
	listOwner := isla.GetOwner()

	isla.CreateEffect(func() {
		items := node.ItemsFn()

		prevKeys := mapset.NewThreadUnsafeSet[string]()
		for k := range entries {
			prevKeys.Add(k)
		}

		nextKeys := mapset.NewThreadUnsafeSet[string]()
		ordered := make([]string, 0, len(items))
		ordereditems := make(map[string]any, len(items))
		for _, item := range items {
			k := node.KeyFn(item)
			if nextKeys.Contains(k) {
				// Duplicate keys would alias entries; keep the first.
				continue
			}
			nextKeys.Add(k)
			ordered = append(ordered, k)
			ordereditems[k] = item
		}

		// Drop entries whose keys disappeared.
		for k := range prevKeys.Difference(nextKeys).Iter() {
			entry := entries[k]
			entry.owner.Dispose()
			for _, n := range entry.nodes {
				parent.RemoveChild(n)
			}
			delete(entries, k)
		}

		// Walk the new order, reusing surviving nodes and creating the rest.
		// Re-inserting before the end anchor in order moves reused nodes
		// into place without recreating them.
		for _, k := range ordered {
			entry, ok := entries[k]
			if !ok {
				entry = &keyedEntry{owner: isla.NewOwner(listOwner)}
				isla.RunWithOwner(entry.owner, func() {
					entry.nodes = m.mountDetached(ordereditems[k], node)
				})
				entries[k] = entry
			}
			for _, n := range entry.nodes {
				parent.InsertBefore(n, end)
			}
		}
	})

	isla.OnCleanup(func() {
		for _, entry := range entries {
			entry.owner.Dispose()
			for _, n := range entry.nodes {
				parent.RemoveChild(n)
			}
		}
		entries = nil
	})
}

// mountDetached renders one list item into a detached holder and returns
// its top-level nodes, ready for ordered insertion.
func (m *mounter) mountDetached(item any, node *vdom.VNode) []*dom.Node {
	return MountDetached(node.RenderFn(item), m.binder)
}
