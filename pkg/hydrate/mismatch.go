package hydrate

import "fmt"

// MismatchKind classifies a divergence between server-rendered DOM and the
// client VNode tree.
type MismatchKind int

const (
	// MismatchText means paired text nodes disagree on trimmed content.
	MismatchText MismatchKind = iota

	// MismatchElement means paired nodes disagree on node type or tag name.
	MismatchElement

	// MismatchAttribute means an expected attribute value differs from the
	// one present in the server markup.
	MismatchAttribute

	// MismatchExtraClient means the client tree expects a node the server
	// markup does not contain.
	MismatchExtraClient

	// MismatchExtraServer means the server markup contains a node the
	// client tree does not expect.
	MismatchExtraServer
)

// String returns the classification label.
func (k MismatchKind) String() string {
	switch k {
	case MismatchText:
		return "text"
	case MismatchElement:
		return "element"
	case MismatchAttribute:
		return "attribute"
	case MismatchExtraClient:
		return "extra-client"
	case MismatchExtraServer:
		return "extra-server"
	default:
		return "unknown"
	}
}

// Mismatch records one divergence found during the lockstep walk.
//
// Mismatches never abort hydration. The server DOM is kept as ground truth
// and walking continues; the record exists for diagnostics only.
type Mismatch struct {
	// Kind is the classification.
	Kind MismatchKind

	// Path locates the divergence, island id first ("counter/div/span@class").
	Path string

	// Want is what the client tree expected.
	Want string

	// Got is what the server markup contained.
	Got string
}

// String formats the mismatch as a single diagnostic line.
func (m Mismatch) String() string {
	return fmt.Sprintf("hydration mismatch (%s) at %s: want %s, got %s",
		m.Kind, m.Path, m.Want, m.Got)
}
