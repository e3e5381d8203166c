// Package hydrate attaches interactivity to server-rendered island markup
// without re-rendering it.
//
// Each <isla-island> element is an independent hydration unit with its own
// state machine:
//
//	Discovered → Triggered → Walking → Bound → Hydrated
//	                  ╲          ╲        ╲
//	                   └──────────┴────────┴──→ Failed
//
// On trigger, the engine resolves the island's component from its script
// URL, rebuilds the client VNode tree from the island's serialized state,
// and walks the tree against the live DOM subtree in document order. Event
// handlers and dynamic bindings are attached to the matched existing nodes;
// no node is recreated.
//
// Divergences between server markup and the client tree are classified
// (text, element, attribute, extra-client, extra-server), logged, and
// otherwise ignored: the already-rendered DOM is ground truth. Failures
// (missing module, bad state, panic) move only the affected island to the
// terminal Failed phase; its markup stays visible and siblings proceed.
//
// Hydration is idempotent: a hydrated island carries a data-hydrated marker
// and later attempts are no-ops, so a bound button clicked once increments
// exactly once no matter how many times triggers fire.
package hydrate
