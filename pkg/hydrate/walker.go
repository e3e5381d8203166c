package hydrate

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/mount"
	"github.com/isla-dev/isla/pkg/vdom"
)

// walker performs the lockstep comparison of a client VNode tree against
// server-rendered DOM, attaching bindings to the existing nodes as it goes.
//
// The walk never mutates matched content: the server DOM is ground truth.
// Dynamic text and attribute effects adopt the server value on their first
// run and only start patching on the first subsequent signal change.
type walker struct {
	binder     *mount.Binder
	mismatches []Mismatch
}

func (w *walker) report(kind MismatchKind, path, want, got string) {
	w.mismatches = append(w.mismatches, Mismatch{Kind: kind, Path: path, Want: want, Got: got})
}

// cursor steps through the meaningful children of one DOM parent.
// Whitespace-only text nodes (pretty-print indentation) are transparent.
type cursor struct {
	parent *dom.Node
	idx    int
}

// peek returns the next meaningful child without consuming it, advancing
// past whitespace-only text nodes.
func (c *cursor) peek() *dom.Node {
	children := c.parent.Children()
	for c.idx < len(children) {
		n := children[c.idx]
		if n.Type == dom.TextNode && strings.TrimSpace(n.Data) == "" {
			c.idx++
			continue
		}
		return n
	}
	return nil
}

// take consumes and returns the next meaningful child, or nil.
func (c *cursor) take() *dom.Node {
	n := c.peek()
	if n != nil {
		c.idx++
	}
	return n
}

// at returns the child at the raw cursor position, used as an insertion
// anchor for structural regions.
func (c *cursor) at() *dom.Node {
	children := c.parent.Children()
	if c.idx < len(children) {
		return children[c.idx]
	}
	return nil
}

// consumed returns the children occupying raw positions [start, c.idx).
func (c *cursor) consumed(start int) []*dom.Node {
	children := c.parent.Children()
	var out []*dom.Node
	for i := start; i < c.idx && i < len(children); i++ {
		out = append(out, children[i])
	}
	return out
}

func describe(n *dom.Node) string {
	if n == nil {
		return "nothing"
	}
	if n.Type == dom.TextNode {
		return fmt.Sprintf("text %q", strings.TrimSpace(n.Data))
	}
	return "<" + n.Tag + ">"
}

// snapshot evaluates a derivation once without registering a dependency.
func snapshot(fn func() string) string {
	var s string
	isla.Untracked(func() { s = fn() })
	return s
}

// walkList matches a sequence of sibling VNodes against the cursor.
func (w *walker) walkList(c *cursor, nodes []*vdom.VNode, path string) {
	for _, v := range nodes {
		w.walkNode(c, v, path)
	}
}

// walkNode matches one VNode against the next DOM content at the cursor.
func (w *walker) walkNode(c *cursor, v *vdom.VNode, path string) {
	if v == nil {
		return
	}

	switch v.Kind {
	case vdom.KindElement:
		w.walkElement(c, v, path)

	case vdom.KindText:
		want := strings.TrimSpace(v.Text)
		if want == "" {
			return
		}
		n := c.take()
		if n == nil {
			w.report(MismatchExtraClient, path, fmt.Sprintf("text %q", want), "nothing")
			return
		}
		if n.Type != dom.TextNode {
			w.report(MismatchElement, path, fmt.Sprintf("text %q", want), describe(n))
			return
		}
		if got := strings.TrimSpace(n.Data); got != want {
			w.report(MismatchText, path, fmt.Sprintf("%q", want), fmt.Sprintf("%q", got))
		}

	case vdom.KindDynamicText:
		want := strings.TrimSpace(snapshot(v.TextFn))
		n := c.take()
		if n == nil {
			w.report(MismatchExtraClient, path, fmt.Sprintf("text %q", want), "nothing")
			return
		}
		if n.Type != dom.TextNode {
			w.report(MismatchElement, path, fmt.Sprintf("text %q", want), describe(n))
			return
		}
		if got := strings.TrimSpace(n.Data); got != want {
			w.report(MismatchText, path, fmt.Sprintf("%q", want), fmt.Sprintf("%q", got))
		}
		w.bindText(n, v.TextFn)

	case vdom.KindFragment:
		w.walkList(c, v.Children, path)

	case vdom.KindShow:
		w.walkShow(c, v, path)

	case vdom.KindFor:
		w.walkFor(c, v, path)

	case vdom.KindIsland:
		// Nested islands hydrate through their own state machines; match
		// the boundary element and stop.
		n := c.take()
		if n == nil {
			w.report(MismatchExtraClient, path, "<"+vdom.IslandTag+">", "nothing")
			return
		}
		if n.Type != dom.ElementNode || n.Tag != vdom.IslandTag {
			w.report(MismatchElement, path, "<"+vdom.IslandTag+">", describe(n))
		}

	case vdom.KindAsync:
		w.walkAsync(c, v, path)

	case vdom.KindRaw:
		// Trusted passthrough: consume the same number of nodes the raw
		// fragment parses to, without comparing content.
		parsed, err := dom.ParseFragment(v.Text)
		if err != nil {
			return
		}
		for _, p := range parsed {
			if p.Type == dom.TextNode && strings.TrimSpace(p.Data) == "" {
				continue
			}
			if c.take() == nil {
				w.report(MismatchExtraClient, path, describe(p), "nothing")
				return
			}
		}
	}
}

func (w *walker) walkElement(c *cursor, v *vdom.VNode, path string) {
	n := c.take()
	if n == nil {
		w.report(MismatchExtraClient, path, "<"+v.Tag+">", "nothing")
		return
	}
	if n.Type != dom.ElementNode {
		w.report(MismatchElement, path, "<"+v.Tag+">", describe(n))
		return
	}

	childPath := path + "/" + v.Tag
	if !strings.EqualFold(n.Tag, v.Tag) {
		w.report(MismatchElement, childPath, "<"+v.Tag+">", "<"+n.Tag+">")
	}

	w.walkAttrs(n, v.Attrs, childPath)

	cc := &cursor{parent: n}
	w.walkList(cc, v.Children, childPath)
	w.drain(cc, childPath)
}

// walkAttrs compares declared attributes against the server markup and
// attaches handler listeners and dynamic-attribute effects. Attributes the
// client does not declare are left alone.
func (w *walker) walkAttrs(el *dom.Node, attrs []vdom.Attr, path string) {
	for _, a := range attrs {
		switch a.Kind {
		case vdom.AttrStatic:
			got, ok := el.Attr(a.Name)
			if !ok {
				w.report(MismatchAttribute, path+"@"+a.Name, fmt.Sprintf("%q", a.Value), "missing")
			} else if got != a.Value {
				w.report(MismatchAttribute, path+"@"+a.Name, fmt.Sprintf("%q", a.Value), fmt.Sprintf("%q", got))
			}

		case vdom.AttrDynamic:
			want := snapshot(a.ValueFn)
			got, ok := el.Attr(a.Name)
			if !ok {
				w.report(MismatchAttribute, path+"@"+a.Name, fmt.Sprintf("%q", want), "missing")
			} else if got != want {
				w.report(MismatchAttribute, path+"@"+a.Name, fmt.Sprintf("%q", want), fmt.Sprintf("%q", got))
			}
			w.bindAttr(el, a)

		case vdom.AttrHandler:
			w.binder.BindHandler(el, a.Name, a.Handler)

		case vdom.AttrAction:
			if handler, ok := w.binder.ResolveAction(a.Action); ok {
				w.binder.BindHandler(el, a.Name, handler)
			}
		}
	}
}

// drain reports every remaining meaningful DOM child as extra-server.
func (w *walker) drain(c *cursor, path string) {
	for {
		n := c.take()
		if n == nil {
			return
		}
		w.report(MismatchExtraServer, path, "nothing", describe(n))
	}
}

// bindText attaches a dynamic-text effect that keeps the server text on its
// first run and patches the node on every later change.
func (w *walker) bindText(text *dom.Node, fn func() string) {
	adopted := false
	isla.CreateEffect(func() {
		v := fn()
		if !adopted {
			adopted = true
			return
		}
		text.Data = v
	})
}

// bindAttr is the attribute counterpart of bindText.
func (w *walker) bindAttr(el *dom.Node, a vdom.Attr) {
	adopted := false
	isla.CreateEffect(func() {
		v := a.ValueFn()
		if !adopted {
			adopted = true
			return
		}
		el.SetAttr(a.Name, v)
	})
}

// walkShow adopts the currently rendered branch of a conditional region and
// installs the effect that swaps branches on later condition changes. The
// first run binds the existing DOM; later runs clear the region and mount
// the other branch fresh.
func (w *walker) walkShow(c *cursor, v *vdom.VNode, path string) {
	parent := c.parent
	showOwner := isla.GetOwner()

	var (
		adopted     bool
		end         *dom.Node
		nodes       []*dom.Node
		branchOwner *isla.Owner
	)

	isla.CreateEffect(func() {
		on := v.Cond()
		branch := v.Child
		if !on {
			branch = v.Fallback
		}

		if !adopted {
			adopted = true
			start := c.idx
			if branch != nil {
				branchOwner = isla.NewOwner(showOwner)
				isla.RunWithOwner(branchOwner, func() {
					w.walkNode(c, branch, path)
				})
			}
			nodes = c.consumed(start)
			end = dom.CreateText("")
			parent.InsertBefore(end, c.at())
			c.idx++
			return
		}

		if branchOwner != nil {
			branchOwner.Dispose()
			branchOwner = nil
		}
		for _, n := range nodes {
			parent.RemoveChild(n)
		}
		nodes = nil

		if branch == nil {
			return
		}
		branchOwner = isla.NewOwner(showOwner)
		endIdx := indexOf(parent, end)
		isla.RunWithOwner(branchOwner, func() {
			mount.MountBefore(parent, end, branch, w.binder)
		})
		children := parent.Children()
		for i := endIdx; i < len(children) && children[i] != end; i++ {
			nodes = append(nodes, children[i])
		}
	})

	isla.OnCleanup(func() {
		if branchOwner != nil {
			branchOwner.Dispose()
		}
	})
}

// forEntry is one adopted or mounted list item.
type forEntry struct {
	nodes []*dom.Node
	owner *isla.Owner
}

// walkFor adopts the server-rendered list items key by key, then installs
// the keyed reconciler for later items changes. Reconciliation matches the
// fresh-mount path: reuse by key, move by ordered reinsertion, mount only
// new keys, dispose removed ones.
func (w *walker) walkFor(c *cursor, v *vdom.VNode, path string) {
	parent := c.parent
	listOwner := isla.GetOwner()
	entries := make(map[string]*forEntry)

	var (
		adopted bool
		end     *dom.Node
	)

	isla.CreateEffect(func() {
		items := v.ItemsFn()

		if !adopted {
			adopted = true
			for _, item := range items {
				k := v.KeyFn(item)
				if _, dup := entries[k]; dup {
					continue
				}
				e := &forEntry{owner: isla.NewOwner(listOwner)}
				start := c.idx
				isla.RunWithOwner(e.owner, func() {
					w.walkNode(c, v.RenderFn(item), path)
				})
				e.nodes = c.consumed(start)
				entries[k] = e
			}
			end = dom.CreateText("")
			parent.InsertBefore(end, c.at())
			c.idx++
			return
		}

		prevKeys := mapset.NewThreadUnsafeSet[string]()
		for k := range entries {
			prevKeys.Add(k)
		}

		nextKeys := mapset.NewThreadUnsafeSet[string]()
		ordered := make([]string, 0, len(items))
		byKey := make(map[string]any, len(items))
		for _, item := range items {
			k := v.KeyFn(item)
			if nextKeys.Contains(k) {
				continue
			}
			nextKeys.Add(k)
			ordered = append(ordered, k)
			byKey[k] = item
		}

		for k := range prevKeys.Difference(nextKeys).Iter() {
			e := entries[k]
			e.owner.Dispose()
			for _, n := range e.nodes {
				parent.RemoveChild(n)
			}
			delete(entries, k)
		}

		for _, k := range ordered {
			e, ok := entries[k]
			if !ok {
				e = &forEntry{owner: isla.NewOwner(listOwner)}
				isla.RunWithOwner(e.owner, func() {
					e.nodes = mount.MountDetached(v.RenderFn(byKey[k]), w.binder)
				})
				entries[k] = e
			}
			for _, n := range e.nodes {
				parent.InsertBefore(n, end)
			}
		}
	})

	isla.OnCleanup(func() {
		for _, e := range entries {
			e.owner.Dispose()
		}
	})
}

// walkAsync adopts the rendered fallback, then runs the producer off the
// loop and swaps in the resolved subtree, exactly as the fresh-mount path
// does. The producer is cancelled when the enclosing owner is disposed.
func (w *walker) walkAsync(c *cursor, v *vdom.VNode, path string) {
	parent := c.parent
	owner := isla.GetOwner()

	fbOwner := isla.NewOwner(owner)
	start := c.idx
	if v.Fallback != nil {
		isla.RunWithOwner(fbOwner, func() {
			w.walkNode(c, v.Fallback, path)
		})
	}
	nodes := c.consumed(start)
	end := dom.CreateText("")
	parent.InsertBefore(end, c.at())
	c.idx++

	ctx, cancel := context.WithCancel(context.Background())
	isla.OnCleanup(func() {
		cancel()
		for _, n := range nodes {
			parent.RemoveChild(n)
		}
		nodes = nil
	})

	binder := w.binder
	go func() {
		resolved, err := v.Produce(ctx)
		if err != nil || resolved == nil {
			// The server-rendered fallback stays.
			return
		}

		binder.Do(func() {
			if owner != nil && owner.IsDisposed() {
				return
			}
			fbOwner.Dispose()
			for _, n := range nodes {
				parent.RemoveChild(n)
			}
			nodes = nil

			resOwner := isla.NewOwner(owner)
			endIdx := indexOf(parent, end)
			isla.RunWithOwner(resOwner, func() {
				mount.MountBefore(parent, end, resolved, binder)
			})
			children := parent.Children()
			for i := endIdx; i < len(children) && children[i] != end; i++ {
				nodes = append(nodes, children[i])
			}
		})
	}()
}

func indexOf(parent, n *dom.Node) int {
	for i, c := range parent.Children() {
		if c == n {
			return i
		}
	}
	return len(parent.Children())
}
