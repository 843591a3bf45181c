package sat

// watchEntry pairs a watched clause with a cached blocker literal believed
// true in that clause, so propagation can skip dereferencing the clause
// entirely in the common case.
type watchEntry struct {
	clause  ClauseRef
	blocker Literal
}

// watchLists maps each literal to the clauses watching it. Detaching a
// clause during propagation is done lazily: the entry is simply left out of
// the rebuilt list (see propagate.go); detaching outside of propagation
// (e.g. when a clause is removed by reduceDB or simplify) instead smudges
// the two literals it was watching so a later cleanAll pass drops the stale
// entries in one compaction.
type watchLists struct {
	lists [][]watchEntry
	dirty []bool
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

// growTo ensures the lists are sized for at least nLits literals (both
// polarities of every variable created).
func (w *watchLists) growTo(nLits int) {
	for len(w.lists) < nLits {
		w.lists = append(w.lists, nil)
		w.dirty = append(w.dirty, false)
	}
}

func (w *watchLists) append(lit Literal, e watchEntry) {
	w.lists[lit] = append(w.lists[lit], e)
}

func (w *watchLists) get(lit Literal) []watchEntry {
	return w.lists[lit]
}

func (w *watchLists) set(lit Literal, entries []watchEntry) {
	w.lists[lit] = entries
}

// smudge marks lit's watch list as needing a cleanAll pass. Used when a
// clause watching lit is detached outside of the propagation loop.
func (w *watchLists) smudge(lit Literal) {
	w.dirty[lit] = true
}

// cleanAll compacts every smudged list, dropping entries whose clause has
// been marked deleted in the arena.
func (w *watchLists) cleanAll(a *arena) {
	for lit, dirty := range w.dirty {
		if !dirty {
			continue
		}
		lst := w.lists[lit]
		j := 0
		for _, e := range lst {
			if !a.deref(e.clause).deleted() {
				lst[j] = e
				j++
			}
		}
		w.lists[lit] = lst[:j]
		w.dirty[lit] = false
	}
}
