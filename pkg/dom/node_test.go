package dom

import "testing"

func TestTreeOps(t *testing.T) {
	doc := NewDocument()
	div := CreateElement("div")
	a := CreateText("a")
	b := CreateText("b")

	doc.AppendChild(div)
	div.AppendChild(b)
	div.InsertBefore(a, b)

	children := div.Children()
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("children order wrong: %v", children)
	}
	if a.Parent() != div {
		t.Error("parent not set on insert")
	}

	div.RemoveChild(a)
	if len(div.Children()) != 1 {
		t.Errorf("len(children) after remove = %d, want 1", len(div.Children()))
	}
	if a.Parent() != nil {
		t.Error("parent not cleared on remove")
	}
}

func TestReplaceChild(t *testing.T) {
	div := CreateElement("div")
	old := CreateText("old")
	repl := CreateText("new")
	div.AppendChild(old)

	div.ReplaceChild(repl, old)

	children := div.Children()
	if len(children) != 1 || children[0] != repl {
		t.Errorf("children = %v, want [new]", children)
	}
}

func TestAttrsPreserveOrder(t *testing.T) {
	el := CreateElement("input")
	el.SetAttr("type", "text")
	el.SetAttr("name", "q")
	el.SetAttr("value", "x")
	el.SetAttr("type", "search") // update must not reorder

	names := el.AttrNames()
	want := []string{"type", "name", "value"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if got, _ := el.Attr("type"); got != "search" {
		t.Errorf("type = %q, want search", got)
	}
}

func TestRemoveAttr(t *testing.T) {
	el := CreateElement("div")
	el.SetAttr("id", "x")
	el.RemoveAttr("id")

	if el.HasAttr("id") {
		t.Error("attribute still present after removal")
	}
	if got := el.AttrOr("id", "fallback"); got != "fallback" {
		t.Errorf("AttrOr = %q, want fallback", got)
	}
}

func TestByID(t *testing.T) {
	doc := NewDocument()
	outer := CreateElement("div")
	inner := CreateElement("span")
	inner.SetAttr("id", "target")
	outer.AppendChild(inner)
	doc.AppendChild(outer)

	if got := doc.ByID("target"); got != inner {
		t.Error("ByID did not find the node")
	}
	if got := doc.ByID("missing"); got != nil {
		t.Error("ByID found a nonexistent id")
	}
}

func TestTextContent(t *testing.T) {
	div := CreateElement("div")
	div.AppendChild(CreateText("hello "))
	span := CreateElement("span")
	span.AppendChild(CreateText("world"))
	div.AppendChild(span)

	if got := div.TextContent(); got != "hello world" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestEventDispatchAndRemove(t *testing.T) {
	btn := CreateElement("button")
	clicks := 0

	remove := btn.AddEventListener("click", func(ev *Event) { clicks++ })

	btn.Click()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	remove()
	btn.Click()
	if clicks != 1 {
		t.Errorf("clicks after removal = %d, want 1", clicks)
	}
}

func TestEventBubbles(t *testing.T) {
	parent := CreateElement("div")
	child := CreateElement("button")
	parent.AppendChild(child)

	var order []string
	child.AddEventListener("click", func(ev *Event) { order = append(order, "child") })
	parent.AddEventListener("click", func(ev *Event) { order = append(order, "parent") })

	child.Click()

	if len(order) != 2 || order[0] != "child" || order[1] != "parent" {
		t.Errorf("order = %v, want [child parent]", order)
	}
}

func TestEventStopPropagation(t *testing.T) {
	parent := CreateElement("div")
	child := CreateElement("button")
	parent.AppendChild(child)

	reachedParent := false
	child.AddEventListener("click", func(ev *Event) { ev.StopPropagation() })
	parent.AddEventListener("click", func(ev *Event) { reachedParent = true })

	child.Click()

	if reachedParent {
		t.Error("event bubbled past StopPropagation")
	}
}

func TestParseAndSerializeRoundTrip(t *testing.T) {
	const html = `<div class="x"><span>hi</span><input type="text"></div>`

	nodes, err := ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}

	if got := nodes[0].OuterHTML(); got != html {
		t.Errorf("round trip:\n got %q\nwant %q", got, html)
	}
}

func TestParseDocumentFindsIslands(t *testing.T) {
	doc, err := ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js"><span>0</span></isla-island></body></html>`)
	if err != nil {
		t.Fatalf("ParseDocumentString: %v", err)
	}

	islands := doc.ByTag("isla-island")
	if len(islands) != 1 {
		t.Fatalf("found %d islands, want 1", len(islands))
	}
	if got := islands[0].AttrOr("id", ""); got != "c" {
		t.Errorf("id = %q, want c", got)
	}
}
