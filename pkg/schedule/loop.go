package schedule

import (
	"sync"
	"sync/atomic"
)

// Loop is the single goroutine all reactive work runs on. Signals, effects
// and DOM mutations have no internal locking for logical state; serializing
// every touch point through one loop is what makes that sound.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
}

// NewLoop starts a loop goroutine and returns it.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for fn := range l.tasks {
		fn()
	}
}

// Dispatch enqueues fn onto the loop. Dispatch after Close is a silent
// drop; late host events must not panic a shutting-down page.
func (l *Loop) Dispatch(fn func()) {
	if l.closed.Load() {
		return
	}
	defer func() {
		// The channel may close between the flag check and the send.
		recover()
	}()
	l.tasks <- fn
}

// DispatchSync enqueues fn and waits for it to finish. Calling it from the
// loop goroutine itself would deadlock; it exists for tests and for edges
// that genuinely sit outside the loop.
func (l *Loop) DispatchSync(fn func()) {
	if l.closed.Load() {
		return
	}
	ran := make(chan struct{})
	l.Dispatch(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Close stops the loop after draining queued tasks.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.tasks)
	})
	<-l.done
}
