// Package schedule decides when each island's hydration begins.
//
// The reactive runtime is single-threaded by contract: all signal writes,
// effect runs and DOM mutations happen on one Loop goroutine, and the host
// event sources (load, idle callbacks, visibility, media queries) interleave
// work by dispatching onto it. Host is the seam to those event sources; a
// browser-like production host and the SimHost used in tests both satisfy
// it.
//
// The Scheduler arms one trigger per discovered island:
//
//	load      hydrate on the host load event
//	idle      hydrate on the first idle callback
//	visible   hydrate when the island element becomes visible
//	media:(q) hydrate when the media query first matches
//	none      hydrate only on an explicit HydrateNow call
//
// Triggers are one-shot. Firing an armed trigger dispatches the island's
// hydration onto the Loop and disarms any remaining observer for it.
package schedule
