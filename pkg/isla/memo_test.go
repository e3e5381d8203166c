package isla

import "testing"

func TestMemoLazy(t *testing.T) {
	s := NewSignal(2)
	computes := 0

	m := NewMemo(func() int {
		computes++
		return s.Get() * 10
	})

	if computes != 0 {
		t.Fatalf("memo computed %d times before first read, want 0", computes)
	}

	if got := m.Get(); got != 20 {
		t.Errorf("Get() = %d, want 20", got)
	}
	if computes != 1 {
		t.Errorf("memo computed %d times, want 1", computes)
	}
}

func TestMemoCaches(t *testing.T) {
	s := NewSignal(3)
	computes := 0

	m := NewMemo(func() int {
		computes++
		return s.Get() + 1
	})

	m.Get()
	m.Get()
	m.Get()

	if computes != 1 {
		t.Errorf("memo computed %d times for repeated reads, want 1", computes)
	}
}

func TestMemoRecomputesOnChange(t *testing.T) {
	s := NewSignal(1)
	m := NewMemo(func() int { return s.Get() * 2 })

	if got := m.Get(); got != 2 {
		t.Errorf("Get() = %d, want 2", got)
	}

	s.Set(5)
	if got := m.Get(); got != 10 {
		t.Errorf("Get() after Set = %d, want 10", got)
	}
}

func TestMemoChain(t *testing.T) {
	s := NewSignal(1)
	double := NewMemo(func() int { return s.Get() * 2 })
	quad := NewMemo(func() int { return double.Get() * 2 })

	if got := quad.Get(); got != 4 {
		t.Errorf("Get() = %d, want 4", got)
	}

	s.Set(3)
	if got := quad.Get(); got != 12 {
		t.Errorf("Get() after Set = %d, want 12", got)
	}
}

func TestMemoDiamondSingleEffectRun(t *testing.T) {
	src := NewSignal(1)
	left := NewMemo(func() int { return src.Get() * 2 })
	right := NewMemo(func() int { return src.Get() + 100 })

	runs := 0
	CreateEffect(func() {
		l := left.Get()
		r := right.Get()
		runs++

		// Both arms must reflect the same source value.
		v := src.Peek()
		if l != v*2 || r != v+100 {
			t.Errorf("inconsistent diamond: src=%d left=%d right=%d", v, l, r)
		}
	})

	if runs != 1 {
		t.Fatalf("effect ran %d times initially, want 1", runs)
	}

	src.Set(5)
	if runs != 2 {
		t.Errorf("effect ran %d times after one write, want 2", runs)
	}
}

func TestMemoPeekNonTracking(t *testing.T) {
	s := NewSignal(1)
	m := NewMemo(func() int { return s.Get() })
	m.Get()

	runs := 0
	CreateEffect(func() {
		m.Peek()
		runs++
	})

	s.Set(2)
	if runs != 1 {
		t.Errorf("effect ran %d times, want 1: memo Peek must not track", runs)
	}
}

func TestMapAndCombine(t *testing.T) {
	a := NewSignal(2)
	b := NewSignal(3)

	sum := Combine[int, int, int](a, b, func(x, y int) int { return x + y })
	doubled := Map[int, int](sum, func(v int) int { return v * 2 })

	if got := doubled.Get(); got != 10 {
		t.Errorf("Get() = %d, want 10", got)
	}

	a.Set(4)
	if got := doubled.Get(); got != 14 {
		t.Errorf("Get() after Set = %d, want 14", got)
	}
}
