package schedule

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/isla-dev/isla/pkg/dom"
	"github.com/isla-dev/isla/pkg/hydrate"
	"github.com/isla-dev/isla/pkg/vdom"
)

// Config configures a Scheduler.
type Config struct {
	// Engine performs the actual hydration. Required.
	Engine *hydrate.Engine

	// Host supplies trigger event sources. Required.
	Host Host

	// Loop is the goroutine hydration runs on. Required.
	Loop *Loop

	// Logger receives trigger diagnostics.
	Logger *log.Logger
}

// Scheduler discovers islands and arms one trigger per island. When the
// trigger fires, hydration is dispatched onto the loop; every trigger is
// one-shot and the engine's idempotence absorbs duplicates.
type Scheduler struct {
	engine *hydrate.Engine
	host   Host
	loop   *Loop
	logger *log.Logger

	mu      sync.Mutex
	cancels map[string]func()
}

// NewScheduler creates a Scheduler.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Scheduler{
		engine:  cfg.Engine,
		host:    cfg.Host,
		loop:    cfg.Loop,
		logger:  cfg.Logger,
		cancels: make(map[string]func()),
	}
}

// Discover scans root for island markers and arms their triggers. Returns
// the newly discovered islands.
func (s *Scheduler) Discover(root *dom.Node) []*hydrate.Island {
	islands := s.engine.Discover(root)
	for _, is := range islands {
		s.Arm(is)
	}
	return islands
}

// Arm installs the island's trigger. TriggerNone islands are left for an
// explicit HydrateNow call.
func (s *Scheduler) Arm(is *hydrate.Island) {
	switch is.Trigger.Kind {
	case vdom.TriggerLoad:
		s.host.OnLoad(func() { s.fire(is) })

	case vdom.TriggerIdle:
		s.host.OnIdle(func() { s.fire(is) })

	case vdom.TriggerVisible:
		cancel := s.host.ObserveVisible(is.Element(), func() { s.fire(is) })
		s.setCancel(is.ID, cancel)

	case vdom.TriggerMedia:
		var once sync.Once
		cancel := s.host.MatchMedia(is.Trigger.Media, func(matches bool) {
			if !matches {
				return
			}
			once.Do(func() { s.fire(is) })
		})
		s.setCancel(is.ID, cancel)

	case vdom.TriggerNone:
		// Manual only.
	}
}

// HydrateNow hydrates an island by id on the loop, regardless of its
// trigger. This is the entry point for TriggerNone islands.
func (s *Scheduler) HydrateNow(id string) error {
	is, ok := s.engine.Island(id)
	if !ok {
		return fmt.Errorf("schedule: unknown island %q", id)
	}

	var err error
	s.loop.DispatchSync(func() {
		err = s.engine.Hydrate(context.Background(), is)
	})
	s.disarm(id)
	return err
}

// fire dispatches one island's hydration onto the loop and disarms its
// remaining observer.
func (s *Scheduler) fire(is *hydrate.Island) {
	s.loop.Dispatch(func() {
		if err := s.engine.Hydrate(context.Background(), is); err != nil {
			s.logger.Printf("isla: island %s: %v", is.ID, err)
		}
	})
	s.disarm(is.ID)
}

func (s *Scheduler) setCancel(id string, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels[id] = cancel
}

func (s *Scheduler) disarm(id string) {
	s.mu.Lock()
	cancel := s.cancels[id]
	delete(s.cancels, id)
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close disarms every remaining trigger.
func (s *Scheduler) Close() {
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = make(map[string]func())
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
