package mount

import (
	"testing"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/vdom"
)

func TestMountStaticTree(t *testing.T) {
	root := dom.CreateElement("div")

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Span(vdom.Class("x"), vdom.Text("hi")), &Binder{})
		return nil
	})

	want := `<span class="x">hi</span>`
	if got := root.InnerHTML(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMountDynamicTextPatches(t *testing.T) {
	root := dom.CreateElement("div")
	count := isla.NewSignal(1)

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Span(vdom.DynamicText(func() string {
			if count.Get() == 1 {
				return "one"
			}
			return "many"
		})), &Binder{})

		if got := root.TextContent(); got != "one" {
			t.Errorf("initial text = %q, want one", got)
		}

		count.Set(2)
		if got := root.TextContent(); got != "many" {
			t.Errorf("patched text = %q, want many", got)
		}
		return nil
	})
}

func TestMountDynamicAttrPatches(t *testing.T) {
	root := dom.CreateElement("div")
	cls := isla.NewSignal("a")

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Span(vdom.Dynamic("class", func() string { return cls.Get() })), &Binder{})

		span := root.Children()[0]
		if got := span.AttrOr("class", ""); got != "a" {
			t.Errorf("class = %q, want a", got)
		}

		cls.Set("b")
		if got := span.AttrOr("class", ""); got != "b" {
			t.Errorf("class after set = %q, want b", got)
		}
		return nil
	})
}

func TestMountShowSwapsBranches(t *testing.T) {
	root := dom.CreateElement("div")
	on := isla.NewSignal(true)

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.ShowElse(func() bool { return on.Get() },
			vdom.Span(vdom.Text("yes")),
			vdom.Span(vdom.Text("no")),
		), &Binder{})

		if got := root.TextContent(); got != "yes" {
			t.Errorf("initial branch = %q, want yes", got)
		}

		on.Set(false)
		if got := root.TextContent(); got != "no" {
			t.Errorf("swapped branch = %q, want no", got)
		}

		on.Set(true)
		if got := root.TextContent(); got != "yes" {
			t.Errorf("swapped back = %q, want yes", got)
		}
		return nil
	})
}

func TestMountShowDisposesOldBranch(t *testing.T) {
	root := dom.CreateElement("div")
	on := isla.NewSignal(true)
	label := isla.NewSignal("a")
	branchRuns := 0

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Show(func() bool { return on.Get() },
			vdom.Span(vdom.DynamicText(func() string {
				branchRuns++
				return label.Get()
			})),
		), &Binder{})

		on.Set(false)
		runsAfterHide := branchRuns

		// The hidden branch's effect must be gone: this write reaches nobody.
		label.Set("b")
		if branchRuns != runsAfterHide {
			t.Errorf("hidden branch effect still live: runs %d -> %d", runsAfterHide, branchRuns)
		}
		return nil
	})
}

func TestMountForKeyedReuse(t *testing.T) {
	root := dom.CreateElement("ul")
	items := isla.NewSignal([]any{"a", "b", "c"})

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.For(
			func() []any { return items.Get() },
			func(v any) string { return v.(string) },
			func(v any) *vdom.VNode { return vdom.Li(vdom.Text(v.(string))) },
		), &Binder{})

		liFor := func(text string) *dom.Node {
			for _, c := range root.Children() {
				if c.Type == dom.ElementNode && c.TextContent() == text {
					return c
				}
			}
			return nil
		}

		if got := root.TextContent(); got != "abc" {
			t.Errorf("initial order = %q, want abc", got)
		}
		bNode := liFor("b")
		if bNode == nil {
			t.Fatal("item b not mounted")
		}

		// Reorder and drop one item. The surviving node must be the same
		// object, moved rather than recreated.
		items.Set([]any{"c", "b"})

		if got := root.TextContent(); got != "cb" {
			t.Errorf("reconciled order = %q, want cb", got)
		}
		if liFor("b") != bNode {
			t.Error("item b was recreated instead of reused")
		}
		if liFor("a") != nil {
			t.Error("removed item a still in the DOM")
		}
		return nil
	})
}

func TestMountForAddsNewKeys(t *testing.T) {
	root := dom.CreateElement("ul")
	items := isla.NewSignal([]any{"a"})

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.For(
			func() []any { return items.Get() },
			func(v any) string { return v.(string) },
			func(v any) *vdom.VNode { return vdom.Li(vdom.Text(v.(string))) },
		), &Binder{})

		items.Set([]any{"a", "b"})
		if got := root.TextContent(); got != "ab" {
			t.Errorf("after append = %q, want ab", got)
		}
		return nil
	})
}

func TestMountHandlerFires(t *testing.T) {
	root := dom.CreateElement("div")
	clicks := 0

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Button(
			vdom.On("click", func(ev *dom.Event) { clicks++ }),
			vdom.Text("go"),
		), &Binder{})

		root.Children()[0].Click()
		if clicks != 1 {
			t.Errorf("clicks = %d, want 1", clicks)
		}
		return nil
	})
}

func TestMountHandlerRemovedOnDispose(t *testing.T) {
	root := dom.CreateElement("div")
	clicks := 0

	isla.CreateRoot(func(dispose func()) any {
		Mount(root, vdom.Button(
			vdom.On("click", func(ev *dom.Event) { clicks++ }),
		), &Binder{})
		dispose()
		return nil
	})

	root.Children()[0].Click()
	if clicks != 0 {
		t.Errorf("clicks after disposal = %d, want 0", clicks)
	}
}

func TestMountActionResolved(t *testing.T) {
	root := dom.CreateElement("div")
	fired := ""
	b := &Binder{Actions: func(name string) (func(*dom.Event), bool) {
		if name != "save" {
			return nil, false
		}
		return func(ev *dom.Event) { fired = name }, true
	}}

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.Button(vdom.OnAction("click", "save")), b)

		root.Children()[0].Click()
		if fired != "save" {
			t.Errorf("fired = %q, want save", fired)
		}
		return nil
	})
}

func TestMountIslandBoundary(t *testing.T) {
	root := dom.CreateElement("div")

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		Mount(root, vdom.IslandNode(&vdom.Island{
			ID:        "c",
			ScriptURL: "/islands/c.js",
			Trigger:   vdom.Trigger{Kind: vdom.TriggerLoad},
			Children:  []*vdom.VNode{vdom.Span(vdom.Text("0"))},
		}), &Binder{})
		return nil
	})

	el := root.Children()[0]
	if el.Tag != vdom.IslandTag {
		t.Fatalf("tag = %q, want %q", el.Tag, vdom.IslandTag)
	}
	if got := el.AttrOr("trigger", ""); got != "load" {
		t.Errorf("trigger = %q, want load", got)
	}
	if got := el.TextContent(); got != "0" {
		t.Errorf("children text = %q, want 0", got)
	}
}

func TestMountDetachedReturnsTopLevelNodes(t *testing.T) {
	var nodes []*dom.Node

	isla.CreateRoot(func(dispose func()) any {
		defer dispose()
		nodes = MountDetached(vdom.Fragment(
			vdom.Span(vdom.Text("a")),
			vdom.Span(vdom.Text("b")),
		), &Binder{})
		return nil
	})

	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}
	for _, n := range nodes {
		if n.Parent() != nil {
			t.Error("returned node still attached")
		}
	}
}
