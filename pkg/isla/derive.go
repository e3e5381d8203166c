package isla

// Readable is the read-side contract shared by Signal[T] and Memo[T].
// Get subscribes the current listener; Peek reads without subscribing.
type Readable[T any] interface {
	Get() T
	Peek() T
}

// Map derives a memo whose value is fn applied to the source's value.
// The derived memo recomputes lazily when the source changes.
//
// Example:
//
//	count := NewSignal(2)
//	doubled := Map(count, func(n int) int { return n * 2 })
func Map[T, U any](src Readable[T], fn func(T) U) *Memo[U] {
	return NewMemo(func() U {
		return fn(src.Get())
	})
}

// Combine derives a memo from two sources. Updating both sources inside one
// Batch recomputes the result at most once.
//
// Example:
//
//	full := Combine(first, last, func(a, b string) string { return a + " " + b })
func Combine[A, B, T any](a Readable[A], b Readable[B], fn func(A, B) T) *Memo[T] {
	return NewMemo(func() T {
		return fn(a.Get(), b.Get())
	})
}

// Combine3 derives a memo from three sources.
func Combine3[A, B, C, T any](a Readable[A], b Readable[B], c Readable[C], fn func(A, B, C) T) *Memo[T] {
	return NewMemo(func() T {
		return fn(a.Get(), b.Get(), c.Get())
	})
}
