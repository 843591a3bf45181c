package sat

import "github.com/rhartert/yagh"

// varHeap is the VSIDS order heap: a max-heap on activity that
// tolerates stale entries (already-assigned or non-decision variables) by
// discarding them the moment they surface at the top, rather than trying to
// remove arbitrary elements. It is a thin wrapper around the third-party
// yagh.IntMap, which is a min-heap keyed by float64 — activities are stored
// negated so the variable with the highest activity sorts first.
type varHeap struct {
	heap *yagh.IntMap[float64]
	size int // number of variables the underlying IntMap has room for
}

func newVarHeap(nVars int) *varHeap {
	return &varHeap{heap: yagh.New[float64](nVars), size: nVars}
}

// insert adds v to the heap (or updates its key if already present) with
// the given activity.
func (h *varHeap) insert(v Var, activity float64) {
	h.heap.Put(int(v), -activity)
}

// contains reports whether v currently has an entry in the heap.
func (h *varHeap) contains(v Var) bool {
	return h.heap.Contains(int(v))
}

// decreaseKey re-keys v after its activity changed. It is a no-op if v is
// not currently in the heap (e.g. it is assigned, or not decision-eligible);
// the entry will be reinserted the next time the variable is unassigned or
// made decidable.
func (h *varHeap) decreaseKey(v Var, activity float64) {
	if h.contains(v) {
		h.heap.Put(int(v), -activity)
	}
}

// popTop removes and returns the variable with the highest activity. Callers
// are responsible for checking whether the returned variable is still a
// live decision candidate: assigned or non-decision entries are discarded
// when reached at the top, not skipped-and-kept.
func (h *varHeap) popTop() (Var, bool) {
	e, ok := h.heap.Pop()
	if !ok {
		return 0, false
	}
	return Var(e.Elem), true
}
