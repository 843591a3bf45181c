package sat

import "testing"

func TestArenaAllocateDeref(t *testing.T) {
	a := newArena()
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1)}
	r := a.allocate(lits, false)

	cd := a.deref(r)
	if len(cd.lits) != 2 || cd.lits[0] != lits[0] || cd.lits[1] != lits[1] {
		t.Fatalf("deref(%d).lits = %v, want %v", r, cd.lits, lits)
	}
	if cd.learnt() {
		t.Error("clause allocated with learnt=false reports learnt() = true")
	}
	if cd.deleted() {
		t.Error("freshly allocated clause reports deleted() = true")
	}

	// Mutating the caller's slice must not affect the arena's copy.
	lits[0] = NegativeLiteral(0)
	if cd.lits[0] == lits[0] {
		t.Error("arena.allocate aliased the caller's slice instead of copying it")
	}
}

func TestArenaAllocateLearnt(t *testing.T) {
	a := newArena()
	r := a.allocate([]Literal{PositiveLiteral(0)}, true)
	if !a.deref(r).learnt() {
		t.Error("clause allocated with learnt=true reports learnt() = false")
	}
}

func TestArenaFreeAndNeedsGC(t *testing.T) {
	a := newArena()
	r1 := a.allocate([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)
	a.allocate([]Literal{PositiveLiteral(2), PositiveLiteral(3)}, false)

	if a.needsGC(0.2) {
		t.Error("needsGC() = true before any clause was freed")
	}

	a.free(r1)
	if !a.deref(r1).deleted() {
		t.Error("free() did not mark the clause deleted")
	}
	if !a.needsGC(0.2) {
		t.Error("needsGC(0.2) = false after freeing half the arena's units")
	}

	// Freeing an already-deleted clause must not double-count wasted units.
	wasted := a.wasted
	a.free(r1)
	if a.wasted != wasted {
		t.Errorf("double free() changed wasted from %d to %d", wasted, a.wasted)
	}
}

func TestArenaSetProtected(t *testing.T) {
	a := newArena()
	r := a.allocate([]Literal{PositiveLiteral(0)}, false)
	cd := a.deref(r)

	cd.setProtected(true)
	if !cd.protected() {
		t.Error("setProtected(true) did not set protected()")
	}
	cd.setProtected(false)
	if cd.protected() {
		t.Error("setProtected(false) did not clear protected()")
	}
}
