package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer handles server-side rendering of VNode trees to HTML.
//
// Server rendering is stateless snapshot rendering: DynamicText and Dynamic
// attributes are evaluated once, untracked, and no effect is retained.
// Show and For are expanded statically from current signal values.
type Renderer struct {
	config RendererConfig

	// islandIDs tracks island ids seen during one render; ids must be
	// unique within a page.
	islandIDs map[string]bool

	// stateScripts are the sibling state script tags queued for islands
	// with script-ref state.
	stateScripts []stateScript
}

type stateScript struct {
	id   string
	body string
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:    config,
		islandIDs: make(map[string]bool),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Reset resets the renderer state for reuse on a new page.
func (r *Renderer) Reset() {
	r.islandIDs = make(map[string]bool)
	r.stateScripts = nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return r.renderText(w, node.Text)
	case vdom.KindDynamicText:
		return r.renderText(w, snapshotString(node.TextFn))
	case vdom.KindFragment:
		return r.renderChildren(w, node.Children, depth)
	case vdom.KindShow:
		return r.renderShow(w, node, depth)
	case vdom.KindFor:
		return r.renderFor(w, node, depth)
	case vdom.KindIsland:
		return r.renderIsland(w, node.Island, depth)
	case vdom.KindAsync:
		// The producer is a client concern; the snapshot shows the fallback.
		return r.renderNode(w, node.Fallback, depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	if err := r.renderAttrs(w, node.Attrs); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}

	if err := r.renderChildren(w, node.Children, depth+1); err != nil {
		return err
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	return nil
}

// renderAttrs renders an element's attributes in declaration order.
// Handler bindings are not rendered; action bindings are rendered as
// data-action markers so the hydrator can resolve them against the
// registry without loading application code.
func (r *Renderer) renderAttrs(w io.Writer, attrs []vdom.Attr) error {
	for _, a := range attrs {
		switch a.Kind {
		case vdom.AttrStatic:
			if err := writeAttr(w, a.Name, a.Value); err != nil {
				return err
			}
		case vdom.AttrDynamic:
			if err := writeAttr(w, a.Name, snapshotString(a.ValueFn)); err != nil {
				return err
			}
		case vdom.AttrHandler:
			// Bound at hydration, nothing to emit.
		case vdom.AttrAction:
			if err := writeAttr(w, "data-action-"+a.Name, a.Action); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAttr(w io.Writer, name, value string) error {
	_, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(value))
	return err
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, text string) error {
	_, err := io.WriteString(w, escapeHTML(text))
	return err
}

func (r *Renderer) renderChildren(w io.Writer, children []*vdom.VNode, depth int) error {
	for _, child := range children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderShow expands a conditional statically from the current value.
func (r *Renderer) renderShow(w io.Writer, node *vdom.VNode, depth int) error {
	var on bool
	isla.Untracked(func() {
		on = node.Cond()
	})

	if on {
		return r.renderNode(w, node.Child, depth)
	}
	return r.renderNode(w, node.Fallback, depth)
}

// renderFor expands a keyed list statically from the current items.
func (r *Renderer) renderFor(w io.Writer, node *vdom.VNode, depth int) error {
	var items []any
	isla.Untracked(func() {
		items = node.ItemsFn()
	})

	for _, item := range items {
		child := node.RenderFn(item)
		if child != nil && child.Key == "" && node.KeyFn != nil {
			child.Key = node.KeyFn(item)
		}
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// snapshotString evaluates a derivation once without retaining an effect.
func snapshotString(fn func() string) string {
	var s string
	isla.Untracked(func() {
		s = fn()
	})
	return s
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
