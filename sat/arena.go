package sat

// ClauseRef is an opaque handle into the clause arena. It is stable across
// everything except a call to Solver.garbageCollect, which rewrites every
// reachable reference (see relocAll in solver.go).
type ClauseRef int32

// RefNone is the distinguished "no clause" handle, used both for decision
// literals and for facts asserted at the root with no antecedent.
const RefNone ClauseRef = -1

// RefTheory marks a trail literal whose antecedent lives in the embedding
// theory rather than the clause database: its explanation is fetched
// on demand from Theory.GetExplanation during conflict analysis,
// rather than dereferenced out of the arena.
const RefTheory ClauseRef = -2

// clauseStatus is a bitmask of clause flags rather than several separate
// bools, cheaper to test and copy.
type clauseStatus uint8

const (
	statusDeleted clauseStatus = 1 << iota
	statusLearnt
	statusProtected
)

// clauseData is the arena's packed representation of one clause. The first
// two literals are always the watched pair; everything past that is
// unordered scratch space that propagation shuffles around.
type clauseData struct {
	lits     []Literal
	activity float64
	lbd      uint32
	prevPos  int // search cursor into lits[2:], see propagate.go
	status   clauseStatus
}

func (c *clauseData) deleted() bool {
	return c.status&statusDeleted != 0
}

func (c *clauseData) learnt() bool {
	return c.status&statusLearnt != 0
}

func (c *clauseData) protected() bool {
	return c.status&statusProtected != 0
}

func (c *clauseData) setProtected(v bool) {
	if v {
		c.status |= statusProtected
	} else {
		c.status &^= statusProtected
	}
}

// arena is a packed, append-only store of clauses addressed by ClauseRef.
// It plays the role that MiniSat's ClauseAllocator plays in C++: it is what
// makes clause handles cheap, stable, and (occasionally) relocatable. Since
// Go already garbage-collects the backing []Literal slices, the arena's own
// job is bookkeeping — tracking live vs. wasted "units" so callers know when
// a compaction pass (garbage_frac) is worthwhile, and giving every
// clause a small integer identity that watch lists, reasons, and clause sets
// can hold onto uniformly.
type arena struct {
	clauses []clauseData
	size    int // total units ever allocated, live or wasted
	wasted  int // units occupied by clauses marked deleted
}

func newArena() *arena {
	return &arena{}
}

// unitsFor approximates the storage a clause of this many literals occupies,
// for the purposes of the garbage_frac accounting. The exact unit
// doesn't matter as long as it's proportional to clause size; header + one
// unit per literal mirrors MiniSat's Clause header-plus-literals sizing.
func unitsFor(nLits int) int {
	return nLits + 2
}

// allocate appends a new clause to the arena and returns its handle.
func (a *arena) allocate(lits []Literal, learnt bool) ClauseRef {
	cd := clauseData{
		lits:    append([]Literal(nil), lits...),
		prevPos: 2,
	}
	if learnt {
		cd.status |= statusLearnt
	}
	a.clauses = append(a.clauses, cd)
	a.size += unitsFor(len(lits))
	return ClauseRef(len(a.clauses) - 1)
}

// deref returns a pointer to the clause data for r. The pointer is only
// valid until the next garbageCollect (arena relocation invalidates it, along
// with r itself); it must never be retained across a gc phase.
func (a *arena) deref(r ClauseRef) *clauseData {
	return &a.clauses[r]
}

// free marks r as deleted and accounts its storage as wasted. The literal
// slice is dropped immediately so it can be garbage-collected by the Go
// runtime even if some other code still holds r around until the next gc.
func (a *arena) free(r ClauseRef) {
	cd := &a.clauses[r]
	if cd.deleted() {
		return
	}
	a.wasted += unitsFor(len(cd.lits))
	cd.status |= statusDeleted
	cd.lits = nil
}

// needsGC reports whether wasted space has crossed the configured
// garbageFrac of the total.
func (a *arena) needsGC(garbageFrac float64) bool {
	if a.size == 0 {
		return false
	}
	return float64(a.wasted)/float64(a.size) > garbageFrac
}
