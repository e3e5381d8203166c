package vdom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IslandTag is the element name used for island boundaries in server markup.
const IslandTag = "isla-island"

// TriggerKind identifies when an island's hydration begins.
type TriggerKind uint8

const (
	// TriggerLoad hydrates on the host load event.
	TriggerLoad TriggerKind = iota

	// TriggerIdle hydrates on the first idle callback.
	TriggerIdle

	// TriggerVisible hydrates when the island scrolls into view.
	TriggerVisible

	// TriggerMedia hydrates when a media query matches.
	TriggerMedia

	// TriggerNone never hydrates automatically; requires an explicit call.
	TriggerNone
)

// Trigger is the hydration trigger condition for an island.
type Trigger struct {
	Kind  TriggerKind
	Media string // media query, for TriggerMedia
}

// String formats the trigger for the island markup contract:
// load | idle | visible | media:(query) | none.
func (t Trigger) String() string {
	switch t.Kind {
	case TriggerLoad:
		return "load"
	case TriggerIdle:
		return "idle"
	case TriggerVisible:
		return "visible"
	case TriggerMedia:
		return "media:(" + t.Media + ")"
	case TriggerNone:
		return "none"
	default:
		return "load"
	}
}

// ParseTrigger parses the trigger attribute value.
// Unknown values fall back to load so a malformed page still hydrates.
func ParseTrigger(s string) (Trigger, error) {
	switch {
	case s == "load" || s == "":
		return Trigger{Kind: TriggerLoad}, nil
	case s == "idle":
		return Trigger{Kind: TriggerIdle}, nil
	case s == "visible":
		return Trigger{Kind: TriggerVisible}, nil
	case s == "none":
		return Trigger{Kind: TriggerNone}, nil
	case strings.HasPrefix(s, "media:"):
		q := strings.TrimPrefix(s, "media:")
		q = strings.TrimPrefix(q, "(")
		q = strings.TrimSuffix(q, ")")
		return Trigger{Kind: TriggerMedia, Media: q}, nil
	default:
		return Trigger{Kind: TriggerLoad}, fmt.Errorf("unknown trigger %q", s)
	}
}

// StateKind identifies how an island's serialized state is delivered.
type StateKind uint8

const (
	// StateEmpty means the island has no serialized state.
	StateEmpty StateKind = iota

	// StateInline embeds the JSON literal in the state attribute.
	StateInline

	// StateScriptRef references a sibling <script type="application/json">
	// by element id.
	StateScriptRef

	// StateURL fetches the JSON from a path.
	StateURL
)

// State describes an island's serialized state source.
type State struct {
	Kind     StateKind
	Inline   json.RawMessage // StateInline
	ScriptID string          // StateScriptRef
	URL      string          // StateURL
}

// InlineState wraps a JSON literal as an inline state source.
func InlineState(raw json.RawMessage) State {
	return State{Kind: StateInline, Inline: raw}
}

// ScriptState references a sibling state script tag by id.
func ScriptState(scriptID string) State {
	return State{Kind: StateScriptRef, ScriptID: scriptID}
}

// URLState fetches state JSON from the given path.
func URLState(path string) State {
	return State{Kind: StateURL, URL: path}
}

// AttrValue formats the state for the island markup contract:
// "#<scriptId>", "url:<path>", an inline JSON literal, or "" for no state.
func (s State) AttrValue() string {
	switch s.Kind {
	case StateInline:
		return string(s.Inline)
	case StateScriptRef:
		return "#" + s.ScriptID
	case StateURL:
		return "url:" + s.URL
	default:
		return ""
	}
}

// ParseState parses the state attribute value.
func ParseState(s string) State {
	switch {
	case s == "":
		return State{Kind: StateEmpty}
	case strings.HasPrefix(s, "#"):
		return State{Kind: StateScriptRef, ScriptID: s[1:]}
	case strings.HasPrefix(s, "url:"):
		return State{Kind: StateURL, URL: strings.TrimPrefix(s, "url:")}
	default:
		return State{Kind: StateInline, Inline: json.RawMessage(s)}
	}
}

// Island describes a hydration boundary. It is created during server render
// and consumed during client hydration; the id must be unique within one
// rendered page and identical between server output and client lookup.
type Island struct {
	// ID is the island identity, unique per page.
	ID string

	// ScriptURL is the module URL exporting the island's hydrate entry.
	ScriptURL string

	// Trigger decides when hydration begins.
	Trigger Trigger

	// State is the serialized state source.
	State State

	// Children is the subtree rendered inside the boundary on the server.
	Children []*VNode
}

// IslandNode wraps an island descriptor as a VNode.
func IslandNode(island *Island) *VNode {
	return &VNode{Kind: KindIsland, Island: island}
}
