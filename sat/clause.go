package sat

// watchClause registers c under watches[~c[0]] and watches[~c[1]] per the
// two-watched-literal invariant, so the clause is re-examined exactly when
// one of its two watched literals is falsified.
func (s *Solver) watchClause(c ClauseRef) {
	cd := s.arena.deref(c)
	s.watches.append(cd.lits[0].Opposite(), watchEntry{clause: c, blocker: cd.lits[1]})
	s.watches.append(cd.lits[1].Opposite(), watchEntry{clause: c, blocker: cd.lits[0]})
}

// detachClause removes c from the arena and smudges the watch lists it was
// registered under, per the lazy-detach model.
func (s *Solver) detachClause(c ClauseRef) {
	cd := s.arena.deref(c)
	if len(cd.lits) >= 2 {
		s.watches.smudge(cd.lits[0].Opposite())
		s.watches.smudge(cd.lits[1].Opposite())
	}
	s.arena.free(c)
}

// locked reports whether c is currently the reason for some trail literal.
func (s *Solver) locked(c ClauseRef) bool {
	cd := s.arena.deref(c)
	if len(cd.lits) == 0 {
		return false
	}
	return s.reason[cd.lits[0].VarID()] == c
}

// newClause normalizes and, if it survives, attaches a clause of the given
// literals. For non-learnt clauses it deduplicates literals, drops
// tautologies, and removes root-false literals in place. It returns
// (ref, ok): ok is false only when the clause reduces to empty (top-level
// UNSAT); ref is RefNone whenever no arena entry was needed (tautology,
// unit fact, or already-true clause).
func (s *Solver) newClause(tmp []Literal, learnt bool) (ClauseRef, bool) {
	if !learnt {
		size := len(tmp)
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmp[i].Opposite()]; ok {
				return RefNone, true // tautology: always true, drop it
			}
			if _, ok := seen[tmp[i]]; ok {
				size--
				tmp[i], tmp[size] = tmp[size], tmp[i]
				continue
			}
			seen[tmp[i]] = struct{}{}

			switch s.litValue(tmp[i]) {
			case True:
				return RefNone, true // already satisfied at root
			case False:
				size--
				tmp[i], tmp[size] = tmp[size], tmp[i]
			}
		}
		tmp = tmp[:size]
	}

	switch len(tmp) {
	case 0:
		return RefNone, false
	case 1:
		return RefNone, s.enqueue(tmp[0], RefNone)
	default:
		cref := s.arena.allocate(tmp, learnt)
		cd := s.arena.deref(cref)

		if learnt {
			maxLevel := int32(-1)
			wl := 1
			for i := 1; i < len(cd.lits); i++ {
				if lvl := s.varLevel[cd.lits[i].VarID()]; lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			cd.lits[1], cd.lits[wl] = cd.lits[wl], cd.lits[1]

			s.bumpClauseActivity(cref)
			for _, l := range cd.lits {
				s.bumpVarActivity(l.VarID())
			}
		}

		s.watchClause(cref)
		s.theory.NotifyClauseAdded(append([]Literal(nil), cd.lits...), learnt)
		return cref, true
	}
}

// simplifyClause drops literals falsified at the root from c in place and
// reports whether c is satisfied at the root (and should be removed). It
// relies on the invariant that a clause reaching this point (propagation
// quiescent, decision level 0) never has a false literal at position 0 or 1:
// if it did, propagate would already have re-watched or resolved it.
func (s *Solver) simplifyClause(c ClauseRef) bool {
	cd := s.arena.deref(c)
	j := 0
	for _, l := range cd.lits {
		switch s.litValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			cd.lits[j] = l
			j++
		}
	}
	cd.lits = cd.lits[:j]
	if cd.prevPos > len(cd.lits) {
		cd.prevPos = 2
	}
	return false
}
