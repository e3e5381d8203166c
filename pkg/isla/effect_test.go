package isla

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	CreateEffect(func() { runs++ })

	if runs != 1 {
		t.Errorf("effect ran %d times, want 1", runs)
	}
}

func TestEffectRerunsOnDependencyChange(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	CreateEffect(func() {
		s.Get()
		runs++
	})

	s.Set(1)
	s.Set(2)

	if runs != 3 {
		t.Errorf("effect ran %d times, want 3", runs)
	}
}

func TestEffectCleanupExactlyOnce(t *testing.T) {
	s := NewSignal(0)
	cleanups := 0

	e := CreateEffect(func() {
		s.Get()
		OnCleanup(func() { cleanups++ })
	})

	if cleanups != 0 {
		t.Fatalf("cleanup ran %d times before any transition, want 0", cleanups)
	}

	// One cleanup per re-run.
	s.Set(1)
	if cleanups != 1 {
		t.Errorf("cleanup ran %d times after one re-run, want 1", cleanups)
	}

	s.Set(2)
	if cleanups != 2 {
		t.Errorf("cleanup ran %d times after two re-runs, want 2", cleanups)
	}

	// Exactly one more on disposal, never both for the same transition.
	e.Dispose()
	if cleanups != 3 {
		t.Errorf("cleanup ran %d times after dispose, want 3", cleanups)
	}

	e.Dispose()
	if cleanups != 3 {
		t.Errorf("cleanup ran %d times after double dispose, want 3", cleanups)
	}
}

func TestEffectDisposeStopsReruns(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	e := CreateEffect(func() {
		s.Get()
		runs++
	})

	e.Dispose()
	s.Set(1)

	if runs != 1 {
		t.Errorf("effect ran %d times after dispose, want 1", runs)
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	use := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(1)
	runs := 0

	CreateEffect(func() {
		if use.Get() {
			a.Get()
		} else {
			b.Get()
		}
		runs++
	})

	use.Set(false)
	if runs != 2 {
		t.Fatalf("effect ran %d times, want 2", runs)
	}

	// a is no longer a dependency.
	a.Set(99)
	if runs != 2 {
		t.Errorf("effect ran %d times after write to dropped source, want 2", runs)
	}

	b.Set(99)
	if runs != 3 {
		t.Errorf("effect ran %d times after write to live source, want 3", runs)
	}
}

func TestOnMountRunsOnceUntracked(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	OnMount(func() {
		s.Get()
		runs++
	})

	s.Set(1)
	if runs != 1 {
		t.Errorf("OnMount body ran %d times, want 1", runs)
	}
}

func TestWritesInsideEffectSettle(t *testing.T) {
	src := NewSignal(0)
	mirror := NewSignal(0)

	CreateEffect(func() {
		mirror.Set(src.Get())
	})

	src.Set(7)
	if got := mirror.Get(); got != 7 {
		t.Errorf("mirror = %d, want 7", got)
	}
}
