package render

import (
	"strings"
	"testing"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := NewRenderer(RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func TestRenderElement(t *testing.T) {
	html := renderString(t, vdom.Div(
		vdom.Class("card"),
		vdom.Span(vdom.Text("hi")),
	))

	want := `<div class="card"><span>hi</span></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderVoidElement(t *testing.T) {
	html := renderString(t, vdom.Input(vdom.Static("type", "text")))

	want := `<input type="text">`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderEscapesText(t *testing.T) {
	html := renderString(t, vdom.Span(vdom.Text(`<script>alert("x")</script>`)))

	if strings.Contains(html, "<script>") {
		t.Errorf("text not escaped: %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag: %q", html)
	}
}

func TestRenderEscapesAttrs(t *testing.T) {
	html := renderString(t, vdom.Div(vdom.Static("title", `a"b`)))

	if !strings.Contains(html, `title="a&quot;b"`) {
		t.Errorf("attribute not escaped: %q", html)
	}
}

func TestRenderDynamicTextSnapshot(t *testing.T) {
	count := isla.NewSignal(41)
	node := vdom.Span(vdom.DynamicText(func() string {
		return "count: " + itoa(count.Get())
	}))

	html := renderString(t, node)
	if html != `<span>count: 41</span>` {
		t.Errorf("got %q", html)
	}

	// The render evaluates once, untracked: later writes are invisible.
	count.Set(99)
	html2 := renderString(t, node)
	if html2 != `<span>count: 99</span>` {
		t.Errorf("fresh render got %q", html2)
	}
}

func TestRenderSkipsHandlers(t *testing.T) {
	html := renderString(t, vdom.Button(
		vdom.On("click", func(ev *dom.Event) {}),
		vdom.Text("go"),
	))

	want := `<button>go</button>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderActionMarker(t *testing.T) {
	html := renderString(t, vdom.Button(vdom.OnAction("click", "save")))

	if !strings.Contains(html, `data-action-click="save"`) {
		t.Errorf("action marker missing: %q", html)
	}
}

func TestRenderShowExpandsActiveBranch(t *testing.T) {
	on := isla.NewSignal(true)
	node := vdom.ShowElse(func() bool { return on.Get() },
		vdom.Span(vdom.Text("yes")),
		vdom.Span(vdom.Text("no")),
	)

	if html := renderString(t, node); html != `<span>yes</span>` {
		t.Errorf("got %q", html)
	}

	on.Set(false)
	if html := renderString(t, node); html != `<span>no</span>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderForExpandsItems(t *testing.T) {
	items := []any{"a", "b"}
	node := vdom.Ul(vdom.For(
		func() []any { return items },
		func(v any) string { return v.(string) },
		func(v any) *vdom.VNode { return vdom.Li(vdom.Text(v.(string))) },
	))

	want := `<ul><li>a</li><li>b</li></ul>`
	if html := renderString(t, node); html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderRaw(t *testing.T) {
	html := renderString(t, vdom.Div(vdom.Raw(`<b>bold</b>`)))

	if html != `<div><b>bold</b></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderIslandContract(t *testing.T) {
	island := &vdom.Island{
		ID:        "counter",
		ScriptURL: "/islands/counter.js",
		Trigger:   vdom.Trigger{Kind: vdom.TriggerVisible},
		State:     vdom.ScriptState("counter-state"),
		Children:  []*vdom.VNode{vdom.Span(vdom.Text("0"))},
	}

	r := NewRenderer(RendererConfig{})
	r.SetStateScript("counter-state", `{"count":0}`)
	html, err := r.RenderToString(vdom.IslandNode(island))
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}

	for _, part := range []string{
		`<isla-island id="counter" url="/islands/counter.js" trigger="visible" state="#counter-state">`,
		`<span>0</span>`,
		`</isla-island>`,
		`<script type="application/json" id="counter-state">{"count":0}</script>`,
	} {
		if !strings.Contains(html, part) {
			t.Errorf("output missing %q:\n%s", part, html)
		}
	}
}

func TestRenderIslandDuplicateID(t *testing.T) {
	island := func() *vdom.VNode {
		return vdom.IslandNode(&vdom.Island{ID: "dup", ScriptURL: "/islands/x.js"})
	}

	r := NewRenderer(RendererConfig{})
	_, err := r.RenderToString(vdom.Fragment(island(), island()))
	if err == nil {
		t.Fatal("duplicate island id not rejected")
	}
	if !strings.Contains(err.Error(), "dup") {
		t.Errorf("error does not name the id: %v", err)
	}
}

func TestRenderIslandEmptyID(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	_, err := r.RenderToString(vdom.IslandNode(&vdom.Island{ScriptURL: "/islands/x.js"}))
	if err == nil {
		t.Fatal("island without id not rejected")
	}
}

func TestRendererReset(t *testing.T) {
	island := vdom.IslandNode(&vdom.Island{ID: "one", ScriptURL: "/islands/one.js"})

	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(island); err != nil {
		t.Fatalf("first render: %v", err)
	}

	r.Reset()
	if _, err := r.RenderToString(island); err != nil {
		t.Errorf("render after Reset: %v", err)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}
