package sat

import "testing"

func TestWatchListsAppendGetSet(t *testing.T) {
	w := newWatchLists()
	w.growTo(4)

	lit := PositiveLiteral(0)
	e1 := watchEntry{clause: 0, blocker: PositiveLiteral(1)}
	e2 := watchEntry{clause: 1, blocker: PositiveLiteral(2)}

	w.append(lit, e1)
	w.append(lit, e2)

	got := w.get(lit)
	if len(got) != 2 || got[0] != e1 || got[1] != e2 {
		t.Fatalf("get(%v) = %v, want [%v %v]", lit, got, e1, e2)
	}

	w.set(lit, got[:1])
	if got := w.get(lit); len(got) != 1 || got[0] != e1 {
		t.Fatalf("after set(): get(%v) = %v, want [%v]", lit, got, e1)
	}
}

func TestWatchListsCleanAll(t *testing.T) {
	a := newArena()
	live := a.allocate([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)
	dead := a.allocate([]Literal{PositiveLiteral(2), PositiveLiteral(3)}, false)
	a.free(dead)

	w := newWatchLists()
	w.growTo(4)
	lit := PositiveLiteral(0)
	w.append(lit, watchEntry{clause: live, blocker: LitNone})
	w.append(lit, watchEntry{clause: dead, blocker: LitNone})

	// cleanAll should skip untouched lists entirely.
	w.cleanAll(a)
	if got := w.get(lit); len(got) != 2 {
		t.Fatalf("cleanAll() compacted an unsmudged list: got %v", got)
	}

	w.smudge(lit)
	w.cleanAll(a)

	got := w.get(lit)
	if len(got) != 1 || got[0].clause != live {
		t.Fatalf("after cleanAll(): get(%v) = %v, want only the live entry", lit, got)
	}
	if w.dirty[lit] {
		t.Error("cleanAll() left the list marked dirty")
	}
}
