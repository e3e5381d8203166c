// Package isla provides the reactive core for the isla framework.
//
// The reactive system provides fine-grained reactivity in the SolidJS style,
// where dependencies are tracked automatically at runtime. Reading a signal
// during a tracked computation (memo or effect) automatically subscribes that
// computation to the signal's changes.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a lazily cached derived computation:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // Recomputes only if dependencies changed
//
// CreateEffect runs side effects when dependencies change:
//
//	CreateEffect(func() {
//	    fmt.Println("Count is:", count.Get())
//	    OnCleanup(func() { /* runs before next re-run and on dispose */ })
//	})
//
// # Ownership
//
// Effects and memos are created under an Owner. Owners form a tree; disposing
// an Owner disposes its children depth-first, runs cleanups in LIFO order and
// severs all signal subscriptions in the subtree. CreateRoot establishes a
// root Owner and hands the caller its dispose function.
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	    c.Set(3)
//	})  // Each affected effect runs once after all updates
//
// Within a flush, memos are invalidated before any effect runs, so an effect
// never observes a stale intermediate value of one of its sources.
//
// # Thread Safety
//
// All reactive primitives are safe for concurrent use. The tracking context
// is per-goroutine, so spawning goroutines requires explicit propagation via
// RunWithOwner.
package isla
