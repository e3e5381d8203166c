package dom

import "strings"

// NodeType discriminates node variants.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	DocumentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case DocumentNode:
		return "Document"
	default:
		return "Unknown"
	}
}

// Node is a live DOM node. Elements carry a tag, attributes, listeners and
// children; text nodes carry character data.
type Node struct {
	Type NodeType

	// Tag is the element name, lower-case. Empty for text nodes.
	Tag string

	// Data is the character data for text nodes.
	Data string

	parent   *Node
	children []*Node

	attrs     map[string]string
	attrOrder []string

	listeners []*listener
}

// NewDocument creates an empty document node.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// CreateElement creates a detached element node.
func CreateElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag)}
}

// CreateText creates a detached text node.
func CreateText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// Parent returns the node's parent, or nil for a detached or document node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children. The returned slice is the node's
// own backing store; callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// AppendChild appends child to n, detaching it from its previous parent.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore inserts child before ref. If ref is nil or not a child of n,
// the child is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil {
		return
	}
	child.Detach()
	if ref == nil {
		n.AppendChild(child)
		return
	}
	for i, c := range n.children {
		if c == ref {
			child.parent = n
			n.children = append(n.children[:i], append([]*Node{child}, n.children[i:]...)...)
			return
		}
	}
	n.AppendChild(child)
}

// RemoveChild removes child from n. A node that is not a child is ignored.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ReplaceChild replaces old with repl in n's child list.
func (n *Node) ReplaceChild(repl, old *Node) {
	for i, c := range n.children {
		if c == old {
			repl.Detach()
			repl.parent = n
			n.children[i] = repl
			old.parent = nil
			return
		}
	}
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// SetAttr sets an attribute, preserving first-set ordering for serialization.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if _, ok := n.attrs[name]; !ok {
		n.attrOrder = append(n.attrOrder, name)
	}
	n.attrs[name] = value
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrOr returns the attribute value, or def if absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.attrs[name]; ok {
		return v
	}
	return def
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	for i, a := range n.attrOrder {
		if a == name {
			n.attrOrder = append(n.attrOrder[:i], n.attrOrder[i+1:]...)
			break
		}
	}
}

// AttrNames returns attribute names in first-set order.
func (n *Node) AttrNames() []string {
	return n.attrOrder
}

// TextContent returns the concatenated character data of the subtree.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetText replaces the node's children with a single text node, or updates
// the data in place when the only child already is a text node.
func (n *Node) SetText(data string) {
	if len(n.children) == 1 && n.children[0].Type == TextNode {
		n.children[0].Data = data
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.AppendChild(CreateText(data))
}

// ByID finds the first element in the subtree with the given id attribute.
func (n *Node) ByID(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Type == ElementNode && node.AttrOr("id", "") == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// ByTag collects elements with the given tag name, in document order.
func (n *Node) ByTag(tag string) []*Node {
	tag = strings.ToLower(tag)
	var out []*Node
	n.Walk(func(node *Node) bool {
		if node.Type == ElementNode && node.Tag == tag {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Walk visits the subtree depth-first in document order. Returning false
// from the visitor stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// ElementChildren returns only the element children, skipping text nodes.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}
