package render

import (
	"fmt"
	"io"

	"github.com/isla-dev/isla/pkg/vdom"
)

// renderIsland emits the island markup contract:
//
//	<isla-island id="…" url="…" trigger="…" state="…">…ssr children…</isla-island>
//
// followed, for script-ref state, by the sibling state script tag
//
//	<script type="application/json" id="…">…</script>
//
// The trigger scheduler and hydration engine consume exactly these
// attributes; changing them breaks cross-component compatibility.
func (r *Renderer) renderIsland(w io.Writer, island *vdom.Island, depth int) error {
	if island == nil {
		return nil
	}
	if island.ID == "" {
		return fmt.Errorf("island with script %q has no id", island.ScriptURL)
	}
	if r.islandIDs[island.ID] {
		return fmt.Errorf("duplicate island id %q", island.ID)
	}
	r.islandIDs[island.ID] = true

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, `<%s`, vdom.IslandTag); err != nil {
		return err
	}
	if err := writeAttr(w, "id", island.ID); err != nil {
		return err
	}
	if err := writeAttr(w, "url", island.ScriptURL); err != nil {
		return err
	}
	if err := writeAttr(w, "trigger", island.Trigger.String()); err != nil {
		return err
	}
	if v := island.State.AttrValue(); v != "" {
		if err := writeAttr(w, "state", v); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	if err := r.renderChildren(w, island.Children, depth+1); err != nil {
		return err
	}

	if r.config.Pretty {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", vdom.IslandTag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	// Script-ref state travels as a sibling JSON script tag.
	if island.State.Kind == vdom.StateScriptRef && len(r.pendingStateFor(island)) > 0 {
		if _, err := fmt.Fprintf(w, `<script type="application/json" id="%s">%s</script>`,
			escapeAttr(island.State.ScriptID), r.pendingStateFor(island)); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
	}

	return nil
}

// SetStateScript queues the JSON body for an island's script-ref state.
// Call before rendering; the body is emitted as the sibling script tag.
func (r *Renderer) SetStateScript(scriptID, body string) {
	r.stateScripts = append(r.stateScripts, stateScript{id: scriptID, body: body})
}

func (r *Renderer) pendingStateFor(island *vdom.Island) string {
	for _, s := range r.stateScripts {
		if s.id == island.State.ScriptID {
			return s.body
		}
	}
	return ""
}
