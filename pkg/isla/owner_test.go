package isla

import "testing"

func TestCreateRootDisposesEffects(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	CreateRoot(func(dispose func()) any {
		CreateEffect(func() {
			s.Get()
			runs++
		})
		dispose()
		return nil
	})

	s.Set(1)
	if runs != 1 {
		t.Errorf("effect ran %d times after root disposal, want 1", runs)
	}
}

func TestOwnerCleanupsLIFO(t *testing.T) {
	var order []int

	CreateRoot(func(dispose func()) any {
		owner := GetOwner()
		owner.OnCleanup(func() { order = append(order, 1) })
		owner.OnCleanup(func() { order = append(order, 2) })
		owner.OnCleanup(func() { order = append(order, 3) })
		dispose()
		return nil
	})

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestChildOwnerDisposedWithParent(t *testing.T) {
	childCleaned := false

	CreateRoot(func(dispose func()) any {
		child := NewOwner(GetOwner())
		RunWithOwner(child, func() {
			OnCleanup(func() { childCleaned = true })
		})
		dispose()
		return nil
	})

	if !childCleaned {
		t.Error("child owner cleanup did not run on parent disposal")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	cleanups := 0

	CreateRoot(func(dispose func()) any {
		GetOwner().OnCleanup(func() { cleanups++ })
		dispose()
		dispose()
		return nil
	})

	if cleanups != 1 {
		t.Errorf("cleanup ran %d times, want 1", cleanups)
	}
}

func TestOnCleanupAfterDisposeIgnored(t *testing.T) {
	var owner *Owner
	CreateRoot(func(dispose func()) any {
		owner = GetOwner()
		dispose()
		return nil
	})

	ran := false
	// Must neither panic nor run.
	owner.OnCleanup(func() { ran = true })
	owner.Dispose()

	if ran {
		t.Error("cleanup registered after disposal ran")
	}
}

func TestHasOwner(t *testing.T) {
	if HasOwner() {
		t.Error("HasOwner() = true outside any root")
	}

	CreateRoot(func(dispose func()) any {
		defer dispose()
		if !HasOwner() {
			t.Error("HasOwner() = false inside a root")
		}
		return nil
	})
}

func TestRunWithOwnerRestores(t *testing.T) {
	CreateRoot(func(dispose func()) any {
		defer dispose()
		outer := GetOwner()

		child := NewOwner(outer)
		RunWithOwner(child, func() {
			if GetOwner() != child {
				t.Error("owner not switched inside RunWithOwner")
			}
		})

		if GetOwner() != outer {
			t.Error("owner not restored after RunWithOwner")
		}
		return nil
	})
}
