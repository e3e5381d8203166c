package hydrate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/vdom"
)

// stateRecorder captures the state document handed to the component.
func stateRecorder(got *json.RawMessage) Component {
	return func(state json.RawMessage) (*vdom.VNode, error) {
		*got = state
		return vdom.Span(vdom.Text("x")), nil
	}
}

func hydrateOne(t *testing.T, e *Engine, doc *dom.Node, id string) *Island {
	t.Helper()
	e.Discover(doc)
	is := mustIsland(t, e, id)
	e.Hydrate(context.Background(), is)
	return is
}

func TestStateEmptyResolvesToNull(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js"><span>x</span></isla-island></body></html>`)

	var got json.RawMessage
	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(&got))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseHydrated {
		t.Fatalf("phase = %s; err: %v", is.Phase(), is.Err())
	}
	if string(got) != "null" {
		t.Errorf("state = %q, want null", got)
	}
}

func TestStateInline(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state='{"n":1}'><span>x</span></isla-island></body></html>`)

	var got json.RawMessage
	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(&got))

	hydrateOne(t, e, doc, "c")
	if string(got) != `{"n":1}` {
		t.Errorf("state = %q, want {\"n\":1}", got)
	}
}

func TestStateScriptRef(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body>
			<isla-island id="c" url="/islands/c.js" state="#boot"><span>x</span></isla-island>
			<script type="application/json" id="boot">{"n":2}</script>
		</body></html>`)

	var got json.RawMessage
	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(&got))

	hydrateOne(t, e, doc, "c")
	if string(got) != `{"n":2}` {
		t.Errorf("state = %q, want {\"n\":2}", got)
	}
}

func TestStateScriptMissingFails(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state="#nope"><span>x</span></isla-island></body></html>`)

	var got json.RawMessage
	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(&got))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseFailed {
		t.Fatalf("phase = %s, want failed", is.Phase())
	}
	if err := is.Err(); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("error does not name the missing script: %v", err)
	}
}

func TestStateScriptWrongTypeFails(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body>
			<isla-island id="c" url="/islands/c.js" state="#boot"><span>x</span></isla-island>
			<script id="boot">{"n":2}</script>
		</body></html>`)

	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(new(json.RawMessage)))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseFailed {
		t.Errorf("phase = %s, want failed for a non-JSON script type", is.Phase())
	}
}

func TestStateInvalidJSONFails(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state="{not json"><span>x</span></isla-island></body></html>`)

	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(new(json.RawMessage)))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseFailed {
		t.Errorf("phase = %s, want failed for invalid inline state", is.Phase())
	}
}

func TestStateURLFetch(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state="url:/state/cart"><span>x</span></isla-island></body></html>`)

	var got json.RawMessage
	var fetched string
	e := newTestEngine(Config{
		Fetch: func(ctx context.Context, path string) ([]byte, error) {
			fetched = path
			return []byte(`{"items":3}`), nil
		},
	})
	e.Registry().Register("/islands/c.js", stateRecorder(&got))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseHydrated {
		t.Fatalf("phase = %s; err: %v", is.Phase(), is.Err())
	}
	if fetched != "/state/cart" {
		t.Errorf("fetched path = %q, want /state/cart", fetched)
	}
	if string(got) != `{"items":3}` {
		t.Errorf("state = %q", got)
	}
}

func TestStateURLFetchErrorFails(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state="url:/state/x"><span>x</span></isla-island></body></html>`)

	fetchErr := errors.New("connection refused")
	e := newTestEngine(Config{
		Fetch: func(ctx context.Context, path string) ([]byte, error) {
			return nil, fetchErr
		},
	})
	e.Registry().Register("/islands/c.js", stateRecorder(new(json.RawMessage)))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseFailed {
		t.Fatalf("phase = %s, want failed", is.Phase())
	}
	if !errors.Is(is.Err(), fetchErr) {
		t.Errorf("cause not preserved: %v", is.Err())
	}
}

func TestStateURLWithoutFetcherFails(t *testing.T) {
	doc, _ := dom.ParseDocumentString(
		`<html><body><isla-island id="c" url="/islands/c.js" state="url:/state/x"><span>x</span></isla-island></body></html>`)

	e := newTestEngine(Config{})
	e.Registry().Register("/islands/c.js", stateRecorder(new(json.RawMessage)))

	is := hydrateOne(t, e, doc, "c")
	if is.Phase() != PhaseFailed {
		t.Errorf("phase = %s, want failed with no fetcher configured", is.Phase())
	}
}
