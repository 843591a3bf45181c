package sat

// bumpVarActivity increases v's activity by the current increment, rescaling
// every activity (and the increment itself) by 1e-100 if the bump would
// overflow into the rescale threshold.
func (s *Solver) bumpVarActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	s.heap.decreaseKey(v, s.activity[v])
}

// decayVarActivity grows the variable activity increment, conceptually
// scaling every future bump relative to past ones by 1/var_decay.
func (s *Solver) decayVarActivity() {
	s.varInc /= s.opts.VarDecay
}

// bumpClauseActivity mirrors bumpVarActivity for learnt clause activities.
func (s *Solver) bumpClauseActivity(c ClauseRef) {
	cd := s.arena.deref(c)
	cd.activity += s.claInc
	if cd.activity > 1e100 {
		for i := range s.arena.clauses {
			s.arena.clauses[i].activity *= 1e-100
		}
		s.claInc *= 1e-100
	}
}

func (s *Solver) decayClauseActivity() {
	s.claInc /= s.opts.ClauseDecay
}
