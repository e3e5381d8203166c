package hydrate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/isla-dev/isla/pkg/dom"
	errs "github.com/isla-dev/isla/internal/errors"
)

// resolveState turns an island's state attribute into a JSON document.
//
// The attribute is one of:
//   - ""            no state; resolves to JSON null
//   - "#scriptId"   body of a sibling <script type="application/json">
//   - "url:path"    JSON fetched through the engine's fetcher
//   - anything else an inline JSON literal
//
// A resolution or parse failure fails this island only.
func (e *Engine) resolveState(ctx context.Context, is *Island) (json.RawMessage, error) {
	raw := strings.TrimSpace(is.StateAttr)

	switch {
	case raw == "":
		return json.RawMessage("null"), nil

	case strings.HasPrefix(raw, "#"):
		id := raw[1:]
		script := documentOf(is.el).ByID(id)
		if script == nil || script.Tag != "script" {
			return nil, errs.New("H002").WithDetail("no <script> with id " + id)
		}
		if typ := script.AttrOr("type", ""); typ != "application/json" {
			return nil, errs.Newf(errs.CategoryHydration,
				"state script %q has type %q, want application/json", id, typ)
		}
		body := []byte(strings.TrimSpace(script.TextContent()))
		if !json.Valid(body) {
			return nil, errs.New("H003").WithDetail("state script " + id)
		}
		return json.RawMessage(body), nil

	case strings.HasPrefix(raw, "url:"):
		if e.fetch == nil {
			return nil, errs.New("H006")
		}
		path := raw[len("url:"):]
		body, err := e.fetch(ctx, path)
		if err != nil {
			return nil, errs.Newf(errs.CategoryHydration, "fetch state %q", path).Wrap(err)
		}
		if !json.Valid(body) {
			return nil, errs.New("H003").WithDetail("state url " + path)
		}
		return json.RawMessage(body), nil

	default:
		if !json.Valid([]byte(raw)) {
			return nil, errs.New("H003").WithDetail("inline state")
		}
		return json.RawMessage(raw), nil
	}
}

// documentOf walks up to the root node of el's tree.
func documentOf(n *dom.Node) *dom.Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}
