package mount

import (
	"context"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

// Mount renders a VNode tree as fresh DOM under parent.
//
// This is the non-hydration client path: nodes are created, and every
// DynamicText and Dynamic attribute gets its own minimal effect patching
// that exact node in place. No virtual-DOM diff is ever performed.
//
// Effects created during the mount belong to the current owner; callers
// typically wrap Mount in isla.CreateRoot so the subtree can be disposed.
func Mount(parent *dom.Node, node *vdom.VNode, b *Binder) {
	m := &mounter{binder: b}
	m.mountInto(parent, nil, node)
}

// MountBefore renders a VNode tree into parent immediately before the
// anchor node (nil appends). The hydration engine uses it to swap fresh
// subtrees into regions recovered from server markup.
func MountBefore(parent, before *dom.Node, node *vdom.VNode, b *Binder) {
	m := &mounter{binder: b}
	m.mountInto(parent, before, node)
}

// MountDetached renders a VNode tree into a detached holder and returns the
// top-level DOM nodes, ready for manual ordered insertion.
func MountDetached(node *vdom.VNode, b *Binder) []*dom.Node {
	if node == nil {
		return nil
	}
	m := &mounter{binder: b}
	holder := dom.NewDocument()
	m.mountInto(holder, nil, node)

	nodes := make([]*dom.Node, len(holder.Children()))
	copy(nodes, holder.Children())
	for _, n := range nodes {
		n.Detach()
	}
	return nodes
}

// mounter carries the binder through the recursive mount.
type mounter struct {
	binder *Binder
}

// mountInto creates DOM for node and inserts it into parent before the
// given anchor (nil appends).
func (m *mounter) mountInto(parent, before *dom.Node, node *vdom.VNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		parent.InsertBefore(m.createElement(node), before)

	case vdom.KindText:
		parent.InsertBefore(dom.CreateText(node.Text), before)

	case vdom.KindDynamicText:
		text := dom.CreateText("")
		parent.InsertBefore(text, before)
		m.binder.BindDynamicText(text, node.TextFn)

	case vdom.KindFragment:
		for _, child := range node.Children {
			m.mountInto(parent, before, child)
		}

	case vdom.KindShow:
		m.mountShow(parent, before, node)

	case vdom.KindFor:
		m.mountFor(parent, before, node)

	case vdom.KindIsland:
		m.mountIsland(parent, before, node.Island)

	case vdom.KindAsync:
		m.mountAsync(parent, before, node)

	case vdom.KindRaw:
		nodes, err := dom.ParseFragment(node.Text)
		if err != nil {
			return
		}
		for _, n := range nodes {
			parent.InsertBefore(n, before)
		}
	}
}

// createElement builds an element node, applies static attributes, installs
// reactive bindings and mounts children.
func (m *mounter) createElement(node *vdom.VNode) *dom.Node {
	el := dom.CreateElement(node.Tag)

	for _, a := range node.Attrs {
		if a.Kind == vdom.AttrStatic {
			el.SetAttr(a.Name, a.Value)
		}
	}
	m.binder.BindElement(el, node.Attrs)

	for _, child := range node.Children {
		m.mountInto(el, nil, child)
	}

	return el
}

// mountIsland mounts an island boundary as a live element. On the fresh
// client path there is nothing to hydrate: children bind directly.
func (m *mounter) mountIsland(parent, before *dom.Node, island *vdom.Island) {
	if island == nil {
		return
	}

	el := dom.CreateElement(vdom.IslandTag)
	el.SetAttr("id", island.ID)
	el.SetAttr("url", island.ScriptURL)
	el.SetAttr("trigger", island.Trigger.String())
	if v := island.State.AttrValue(); v != "" {
		el.SetAttr("state", v)
	}
	parent.InsertBefore(el, before)

	for _, child := range island.Children {
		m.mountInto(el, nil, child)
	}
}

// mountShow mounts a conditional region. The branch subtree lives under its
// own owner so switching branches disposes the old branch's effects before
// the new branch mounts.
func (m *mounter) mountShow(parent, before *dom.Node, node *vdom.VNode) {
	r := newRegion(parent, before)
	showOwner := isla.GetOwner()

	isla.CreateEffect(func() {
		on := node.Cond()

		r.clear()
		branch := node.Child
		if !on {
			branch = node.Fallback
		}
		if branch == nil {
			return
		}

		r.owner = isla.NewOwner(showOwner)
		isla.RunWithOwner(r.owner, func() {
			r.capture(m, branch)
		})
	})

	isla.OnCleanup(r.clear)
}

// mountAsync mounts the fallback, runs the producer off the loop, and swaps
// in the resolved subtree. Cancellation is tied to the enclosing owner: if
// the owner is disposed before resolution, the result is dropped.
func (m *mounter) mountAsync(parent, before *dom.Node, node *vdom.VNode) {
	r := newRegion(parent, before)

	r.owner = isla.NewOwner(isla.GetOwner())
	isla.RunWithOwner(r.owner, func() {
		r.capture(m, node.Fallback)
	})

	ctx, cancel := context.WithCancel(context.Background())
	isla.OnCleanup(func() {
		cancel()
		r.clear()
	})

	owner := isla.GetOwner()
	binder := m.binder

	go func() {
		resolved, err := node.Produce(ctx)
		if err != nil || resolved == nil {
			// The fallback stays; producer failure is not fatal.
			return
		}

		binder.dispatch(func() {
			if owner != nil && owner.IsDisposed() {
				return
			}
			r.clear()
			r.owner = isla.NewOwner(owner)
			isla.RunWithOwner(r.owner, func() {
				r.capture(m, resolved)
			})
		})
	}()
}

// region tracks a replaceable run of sibling nodes anchored at a stable
// position inside the parent. An empty text node marks the position so
// swaps do not depend on neighboring content.
type region struct {
	parent *dom.Node
	end    *dom.Node
	nodes  []*dom.Node
	owner  *isla.Owner
}

func newRegion(parent, before *dom.Node) *region {
	end := dom.CreateText("")
	parent.InsertBefore(end, before)
	return &region{parent: parent, end: end}
}

// capture mounts a subtree just before the region's end anchor and records
// the created top-level nodes so they can be cleared later.
func (r *region) capture(m *mounter, node *vdom.VNode) {
	// Everything inserted before the end anchor during this mount belongs
	// to the region.
	beforeCount := r.indexOfEnd()
	m.mountInto(r.parent, r.end, node)
	afterCount := r.indexOfEnd()

	children := r.parent.Children()
	for i := beforeCount; i < afterCount; i++ {
		r.nodes = append(r.nodes, children[i])
	}
}

func (r *region) indexOfEnd() int {
	for i, c := range r.parent.Children() {
		if c == r.end {
			return i
		}
	}
	return len(r.parent.Children())
}

// clear disposes the region's owner and removes its nodes.
func (r *region) clear() {
	if r.owner != nil {
		r.owner.Dispose()
		r.owner = nil
	}
	for _, n := range r.nodes {
		r.parent.RemoveChild(n)
	}
	r.nodes = nil
}
