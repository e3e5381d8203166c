package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a complete HTML document into a DocumentNode.
// The parser normalizes markup the way browsers do (html/head/body wrappers
// are added if missing), which matches what the hydrator will encounter on
// a real page.
func ParseDocument(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	convertChildren(root, doc)
	return doc, nil
}

// ParseDocumentString parses a complete HTML document from a string.
func ParseDocumentString(s string) (*Node, error) {
	return ParseDocument(strings.NewReader(s))
}

// ParseFragment parses an HTML fragment (body context) and returns the
// top-level nodes.
func ParseFragment(s string) ([]*Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	parsed, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, err
	}

	holder := NewDocument()
	for _, hn := range parsed {
		convert(hn, holder)
	}

	out := make([]*Node, len(holder.children))
	copy(out, holder.children)
	for _, n := range out {
		n.parent = nil
	}
	holder.children = nil
	return out, nil
}

// convert maps an html.Node subtree onto dom nodes under parent.
// Comments and doctypes are dropped; the hydration walk never sees them.
func convert(hn *html.Node, parent *Node) {
	switch hn.Type {
	case html.ElementNode:
		el := CreateElement(hn.Data)
		for _, a := range hn.Attr {
			el.SetAttr(a.Key, a.Val)
		}
		parent.AppendChild(el)
		convertChildren(hn, el)
	case html.TextNode:
		parent.AppendChild(CreateText(hn.Data))
	}
}

func convertChildren(hn *html.Node, parent *Node) {
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		convert(c, parent)
	}
}
