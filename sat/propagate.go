package sat

// propagateAll alternates BCP with theory-level propagation until both
// report no further work: whenever the theory's Propagate enqueues new
// facts, those facts may unlock further BCP, and vice versa. It returns the
// first conflicting clause found, from either source.
func (s *Solver) propagateAll() ClauseRef {
	for {
		if conflict := s.propagate(); conflict != RefNone {
			return conflict
		}
		before := len(s.trail)
		if conflict := s.theory.Propagate(s); conflict != RefNone {
			return conflict
		}
		if len(s.trail) == before {
			return RefNone
		}
	}
}

// propagate runs unit propagation to quiescence starting from qhead. It
// returns RefNone if the trail reaches quiescence with no conflict, or the
// conflicting clause otherwise. The trail is left as-is on conflict: the
// caller is responsible for analyzing it before any cancelUntil.
func (s *Solver) propagate() ClauseRef {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		s.Stats.Propagations++

		entries := s.watches.get(p)
		s.tmpWatchers = append(s.tmpWatchers[:0], entries...)
		s.watches.set(p, entries[:0])

		for i := 0; i < len(s.tmpWatchers); i++ {
			w := s.tmpWatchers[i]

			// Fast path: the cached blocker is already true, so the clause
			// is satisfied without even looking at it.
			if s.litValue(w.blocker) == True {
				s.watches.append(p, w)
				continue
			}

			cd := s.arena.deref(w.clause)
			falseLit := p.Opposite()
			if cd.lits[0] == falseLit {
				cd.lits[0], cd.lits[1] = cd.lits[1], cd.lits[0]
			}
			first := cd.lits[0]
			if first != w.blocker && s.litValue(first) == True {
				s.watches.append(p, watchEntry{clause: w.clause, blocker: first})
				s.promoteDecisionWatch(cd)
				continue
			}

			// Search the non-watched tail for a literal that is not false,
			// resuming from prevPos so a long clause is not rescanned from
			// the top every time.
			n := len(cd.lits)
			if cd.prevPos < 2 || cd.prevPos >= n {
				cd.prevPos = 2
			}
			found := false
			for k := 0; k < n-2; k++ {
				idx := 2 + (cd.prevPos-2+k)%(n-2)
				if s.litValue(cd.lits[idx]) != False {
					cd.lits[1], cd.lits[idx] = cd.lits[idx], cd.lits[1]
					cd.prevPos = idx
					s.watches.append(cd.lits[1].Opposite(), watchEntry{clause: w.clause, blocker: first})
					found = true
					break
				}
			}
			if found {
				s.promoteDecisionWatch(cd)
				continue
			}

			// No replacement watch: the clause is unit under first, or a
			// conflict if first is already false. Either way it keeps
			// watching p.
			s.watches.append(p, watchEntry{clause: w.clause, blocker: first})
			if s.litValue(first) == False {
				// Copy the remaining, not-yet-examined watchers back
				// unchanged before returning: they are still valid,
				// nothing has been done to them.
				for j := i + 1; j < len(s.tmpWatchers); j++ {
					s.watches.append(p, s.tmpWatchers[j])
				}
				return w.clause
			}
			s.enqueue(first, w.clause)
			s.promoteDecisionWatch(cd)
		}
	}
	return RefNone
}

// promoteDecisionWatch enforces the non-standard watch invariant: at least
// one of a clause's two watched variables must be decidable. When this
// drifts — both watched variables have become non-decidable since the
// clause was last touched — the lower-indexed watched variable is
// deterministically promoted to decidable, so that repeated runs over the
// same input make the same choice. This is skipped while either watched
// literal is currently false. Right after the clause was found satisfied by
// lits[0] or made unit, lits[1] is the literal just falsified, so in
// practice the promotion only happens after propagation moved a watch onto
// a new non-false literal while lits[0] is not false.
func (s *Solver) promoteDecisionWatch(cd *clauseData) {
	v0, v1 := cd.lits[0].VarID(), cd.lits[1].VarID()
	if s.decidable[v0] || s.decidable[v1] {
		return
	}
	if s.litValue(cd.lits[0]) == False || s.litValue(cd.lits[1]) == False {
		return
	}
	v := v0
	if v1 < v0 {
		v = v1
	}
	s.SetDecidable(v, true)
}
