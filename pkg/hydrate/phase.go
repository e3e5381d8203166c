package hydrate

// Phase is the hydration state of one island.
//
// The machine advances Discovered → Triggered → Walking → Bound → Hydrated.
// Failed is terminal and reachable from any phase after Discovered; Hydrated
// is terminal and makes later hydration attempts no-ops.
type Phase int

const (
	// PhaseDiscovered means the island marker was found in the document
	// but its trigger has not fired.
	PhaseDiscovered Phase = iota

	// PhaseTriggered means the trigger fired and the island's component
	// module is being resolved.
	PhaseTriggered

	// PhaseWalking means the client VNode tree is being compared against
	// the server-rendered DOM subtree.
	PhaseWalking

	// PhaseBound means handlers and dynamic-binding effects are attached.
	PhaseBound

	// PhaseHydrated is terminal success.
	PhaseHydrated

	// PhaseFailed is terminal failure. The server markup stays in place
	// but the island is non-interactive.
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDiscovered:
		return "discovered"
	case PhaseTriggered:
		return "triggered"
	case PhaseWalking:
		return "walking"
	case PhaseBound:
		return "bound"
	case PhaseHydrated:
		return "hydrated"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase admits no further transitions.
func (p Phase) Terminal() bool {
	return p == PhaseHydrated || p == PhaseFailed
}
