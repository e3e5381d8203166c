package schedule

import (
	"sync"

	"github.com/isla-dev/isla/pkg/dom"
)

// Host exposes the event sources a page environment provides. Production
// embeds wire this to the real load event, idle callbacks, intersection
// observers and media query lists; tests use SimHost.
//
// Callbacks fire on the host's own terms; the Scheduler re-dispatches onto
// the Loop, so Host implementations never touch reactive state directly.
type Host interface {
	// OnLoad runs fn when the page load event fires. If load already
	// fired, fn runs immediately.
	OnLoad(fn func())

	// OnIdle runs fn on the next idle period.
	OnIdle(fn func())

	// ObserveVisible runs fn once when el becomes visible. The returned
	// cancel stops observing.
	ObserveVisible(el *dom.Node, fn func()) (cancel func())

	// MatchMedia runs fn with the current match state and again on every
	// change. The returned cancel stops listening.
	MatchMedia(query string, fn func(matches bool)) (cancel func())
}

// SimHost is an in-memory Host for tests and server-side simulation. Event
// firing is explicit: FireLoad, FireIdle, SetVisible and SetMedia stand in
// for the browser.
type SimHost struct {
	mu sync.Mutex

	loaded    bool
	loadFns   []func()
	idleFns   []func()
	visWatch  map[*dom.Node][]*visWatcher
	media     map[string]bool
	mediaFns  map[string][]*mediaWatcher
	nextWatch int
}

type visWatcher struct {
	id    int
	fn    func()
	fired bool
}

type mediaWatcher struct {
	id int
	fn func(bool)
}

// NewSimHost creates a SimHost with no media queries matching.
func NewSimHost() *SimHost {
	return &SimHost{
		visWatch: make(map[*dom.Node][]*visWatcher),
		media:    make(map[string]bool),
		mediaFns: make(map[string][]*mediaWatcher),
	}
}

// OnLoad implements Host.
func (h *SimHost) OnLoad(fn func()) {
	h.mu.Lock()
	if h.loaded {
		h.mu.Unlock()
		fn()
		return
	}
	h.loadFns = append(h.loadFns, fn)
	h.mu.Unlock()
}

// OnIdle implements Host.
func (h *SimHost) OnIdle(fn func()) {
	h.mu.Lock()
	h.idleFns = append(h.idleFns, fn)
	h.mu.Unlock()
}

// ObserveVisible implements Host.
func (h *SimHost) ObserveVisible(el *dom.Node, fn func()) func() {
	h.mu.Lock()
	h.nextWatch++
	w := &visWatcher{id: h.nextWatch, fn: fn}
	h.visWatch[el] = append(h.visWatch[el], w)
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		watchers := h.visWatch[el]
		for i, cand := range watchers {
			if cand.id == w.id {
				h.visWatch[el] = append(watchers[:i], watchers[i+1:]...)
				return
			}
		}
	}
}

// MatchMedia implements Host. The callback fires immediately with the
// current state, matching how media query lists behave.
func (h *SimHost) MatchMedia(query string, fn func(bool)) func() {
	h.mu.Lock()
	h.nextWatch++
	w := &mediaWatcher{id: h.nextWatch, fn: fn}
	h.mediaFns[query] = append(h.mediaFns[query], w)
	current := h.media[query]
	h.mu.Unlock()

	fn(current)

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		watchers := h.mediaFns[query]
		for i, cand := range watchers {
			if cand.id == w.id {
				h.mediaFns[query] = append(watchers[:i], watchers[i+1:]...)
				return
			}
		}
	}
}

// FireLoad fires the load event. Later OnLoad registrations run
// immediately, as after a real load.
func (h *SimHost) FireLoad() {
	h.mu.Lock()
	if h.loaded {
		h.mu.Unlock()
		return
	}
	h.loaded = true
	fns := h.loadFns
	h.loadFns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// FireIdle fires one idle period, draining all pending idle callbacks.
func (h *SimHost) FireIdle() {
	h.mu.Lock()
	fns := h.idleFns
	h.idleFns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SetVisible marks el visible, firing its observers once each.
func (h *SimHost) SetVisible(el *dom.Node) {
	h.mu.Lock()
	watchers := h.visWatch[el]
	var fns []func()
	for _, w := range watchers {
		if !w.fired {
			w.fired = true
			fns = append(fns, w.fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SetMedia changes a media query's match state, notifying listeners on
// actual changes.
func (h *SimHost) SetMedia(query string, matches bool) {
	h.mu.Lock()
	if h.media[query] == matches {
		h.mu.Unlock()
		return
	}
	h.media[query] = matches
	watchers := h.mediaFns[query]
	fns := make([]func(bool), 0, len(watchers))
	for _, w := range watchers {
		fns = append(fns, w.fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(matches)
	}
}
