package binding

import "testing"

func TestVarGetSet(t *testing.T) {
	v := NewVar(3)
	if v.Get() != 3 {
		t.Fatalf("initial = %d", v.Get())
	}
	v.Set(7)
	if v.Get() != 7 {
		t.Fatalf("after set = %d", v.Get())
	}
}

func TestVarSubscribe(t *testing.T) {
	v := NewVar("")
	var seen []string
	unsub := v.Subscribe(func(s string) { seen = append(seen, s) })
	v.Set("a")
	v.Set("b")
	unsub()
	v.Set("c")
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("seen = %v", seen)
	}
}

func TestExternal(t *testing.T) {
	store := 10
	c := External(
		func() int { return store },
		func(v int) { store = v },
	)
	if c.Get() != 10 {
		t.Fatalf("get = %d", c.Get())
	}
	c.Set(20)
	if store != 20 {
		t.Fatalf("store = %d", store)
	}
}

func TestExternalReadOnly(t *testing.T) {
	c := External(func() int { return 1 }, nil)
	c.Set(99) // must not panic
	if c.Get() != 1 {
		t.Fatalf("get = %d", c.Get())
	}
}

func TestDerivedReadsThroughAndDropsWrites(t *testing.T) {
	src := NewVar("hello")
	empty := Derived(src, func(s string) bool { return s == "" })
	if empty.Get() {
		t.Error("non-empty source reported empty")
	}
	src.Set("")
	if !empty.Get() {
		t.Error("empty source not reflected")
	}
	empty.Set(false) // write side is a no-op
	if !empty.Get() {
		t.Error("write should not have changed anything")
	}
}

func TestDiscard(t *testing.T) {
	c := Discard[int]()
	c.Set(5)
	if c.Get() != 0 {
		t.Fatalf("discard cell returned %d", c.Get())
	}
}

func TestCellIdentityComparable(t *testing.T) {
	a := Cell[int](NewVar(0))
	b := Cell[int](NewVar(0))
	if a == b {
		t.Error("distinct cells compared equal")
	}
	if a != a {
		t.Error("cell not equal to itself")
	}
}
