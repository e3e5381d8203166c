package hydrate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errs "github.com/isla-dev/isla/internal/errors"
	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/isla"
	"github.com/isla-dev/isla/pkg/mount"
	"github.com/isla-dev/isla/pkg/vdom"
)

const tracerName = "isla/hydrate"

// Config configures an Engine. The zero value works: an empty registry, a
// plain binder, the standard logger, and no url: state fetcher.
type Config struct {
	// Registry resolves island script URLs to components.
	Registry *Registry

	// Binder supplies action resolution and loop dispatch for bindings.
	Binder *mount.Binder

	// Fetch loads url: state documents. nil disables url: state.
	Fetch func(ctx context.Context, path string) ([]byte, error)

	// Logger receives mismatch and failure diagnostics.
	Logger *log.Logger
}

// Engine hydrates islands: it resolves their components, rebuilds their
// client VNode trees from serialized state, walks those trees against the
// server markup and attaches fine-grained bindings to the existing nodes.
type Engine struct {
	registry *Registry
	binder   *mount.Binder
	fetch    func(ctx context.Context, path string) ([]byte, error)
	logger   *log.Logger
	tracer   trace.Tracer

	mu      sync.Mutex
	islands map[string]*Island
}

// NewEngine creates an Engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Binder == nil {
		cfg.Binder = &mount.Binder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Engine{
		registry: cfg.Registry,
		binder:   cfg.Binder,
		fetch:    cfg.Fetch,
		logger:   cfg.Logger,
		tracer:   otel.Tracer(tracerName),
		islands:  make(map[string]*Island),
	}
}

// Registry returns the engine's component registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Discover scans a DOM tree for island boundary elements and records them
// in the discovered phase. Already-known ids are skipped, so repeated scans
// after partial page updates are cheap and stable.
func (e *Engine) Discover(root *dom.Node) []*Island {
	seen := mapset.NewThreadUnsafeSet[string]()
	var found []*Island

	e.mu.Lock()
	defer e.mu.Unlock()

	root.Walk(func(n *dom.Node) bool {
		if n.Type != dom.ElementNode || n.Tag != vdom.IslandTag {
			return true
		}
		id := n.AttrOr("id", "")
		url := n.AttrOr("url", "")
		if id == "" || url == "" || seen.Contains(id) {
			return true
		}
		seen.Add(id)
		if _, known := e.islands[id]; known {
			return true
		}

		trigger, err := vdom.ParseTrigger(n.AttrOr("trigger", "load"))
		if err != nil {
			e.logger.Printf("isla: island %s: %v (defaulting to load)", id, err)
		}

		is := &Island{
			ID:        id,
			ScriptURL: url,
			Trigger:   trigger,
			StateAttr: n.AttrOr("state", ""),
			el:        n,
			phase:     PhaseDiscovered,
		}
		e.islands[id] = is
		found = append(found, is)
		return true
	})

	return found
}

// Island returns a discovered island by id.
func (e *Engine) Island(id string) (*Island, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	is, ok := e.islands[id]
	return is, ok
}

// Islands returns all discovered islands sorted by id.
func (e *Engine) Islands() []*Island {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Island, 0, len(e.islands))
	for _, is := range e.islands {
		out = append(out, is)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Hydrate runs the island's state machine to completion.
//
// Hydrating an already-hydrated island is a no-op, so double triggers never
// produce duplicate bindings. A failed island stays failed and returns its
// original error. Failures never propagate past the island boundary.
func (e *Engine) Hydrate(ctx context.Context, is *Island) error {
	if is == nil {
		return nil
	}

	is.mu.Lock()
	switch is.phase {
	case PhaseHydrated:
		is.mu.Unlock()
		return nil
	case PhaseFailed:
		err := is.err
		is.mu.Unlock()
		return err
	}
	if is.el.HasAttr(hydratedAttr) {
		is.phase = PhaseHydrated
		is.mu.Unlock()
		return nil
	}
	is.phase = PhaseTriggered
	is.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "hydrate.island", trace.WithAttributes(
		attribute.String("island.id", is.ID),
		attribute.String("island.trigger", is.Trigger.String()),
	))
	defer span.End()
	start := time.Now()

	comp, ok := e.registry.Resolve(is.ScriptURL)
	if !ok {
		return e.fail(is, span, errs.New("H001").WithDetail(is.ScriptURL))
	}

	state, err := e.resolveState(ctx, is)
	if err != nil {
		return e.fail(is, span, err)
	}

	var root *vdom.VNode
	if err := guard(func() error {
		var cerr error
		root, cerr = comp(state)
		return cerr
	}); err != nil {
		return e.fail(is, span, errs.FromError(err, "H004"))
	}

	is.setPhase(PhaseWalking)

	var mismatches []Mismatch
	err = isla.CreateRoot(func(dispose func()) error {
		is.mu.Lock()
		is.dispose = dispose
		is.mu.Unlock()

		w := &walker{binder: e.binder}
		werr := guard(func() error {
			c := &cursor{parent: is.el}
			w.walkNode(c, root, is.ID)
			w.drain(c, is.ID)
			return nil
		})
		mismatches = w.mismatches
		return werr
	})
	if err != nil {
		is.mu.Lock()
		dispose := is.dispose
		is.dispose = nil
		is.mu.Unlock()
		if dispose != nil {
			dispose()
		}
		return e.fail(is, span, errs.FromError(err, "H005"))
	}

	is.setPhase(PhaseBound)

	for _, m := range mismatches {
		e.logger.Printf("isla: island %s: %s", is.ID, m)
		mismatchesTotal.WithLabelValues(m.Kind.String()).Inc()
	}

	is.el.SetAttr(hydratedAttr, "")
	is.mu.Lock()
	is.phase = PhaseHydrated
	is.mismatches = mismatches
	is.mu.Unlock()

	islandsTotal.WithLabelValues("hydrated").Inc()
	durationSeconds.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("island.mismatches", len(mismatches)))
	return nil
}

// HydrateAll discovers and hydrates every island under root whose trigger
// is load, and returns the islands left for the scheduler to arm.
func (e *Engine) HydrateAll(ctx context.Context, root *dom.Node) []*Island {
	var deferred []*Island
	for _, is := range e.Discover(root) {
		if is.Trigger.Kind == vdom.TriggerLoad {
			e.Hydrate(ctx, is)
			continue
		}
		deferred = append(deferred, is)
	}
	return deferred
}

// fail moves the island to the terminal failed phase. The error is logged
// and stored, never propagated to sibling islands.
func (e *Engine) fail(is *Island, span trace.Span, err error) error {
	is.mu.Lock()
	is.phase = PhaseFailed
	is.err = err
	is.mu.Unlock()

	islandsTotal.WithLabelValues("failed").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "hydration failed")
	e.logger.Printf("isla: island %s failed to hydrate: %v", is.ID, err)
	return err
}

// guard converts a panic into an error so one island's failure cannot take
// down the page.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
