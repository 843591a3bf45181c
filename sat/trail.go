package sat

// decisionLevel returns the current decision level. The root level is 0.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// litValue returns the current truth value of lit.
func (s *Solver) litValue(lit Literal) LBool {
	return s.assigns[lit]
}

// varValue returns the current truth value of v, expressed as the value of
// its positive literal.
func (s *Solver) varValue(v Var) LBool {
	return s.assigns[PositiveLiteral(v)]
}

// newDecisionLevel opens a new decision level.
func (s *Solver) newDecisionLevel() {
	s.theory.NewDecisionLevel()
	s.trailLim = append(s.trailLim, len(s.trail))
}

// enqueue records lit as true with the given reason (RefNone for decisions
// and root-level facts). It returns false if lit is already false
// (conflicting assignment) and true otherwise (including if lit was already
// true).
func (s *Solver) enqueue(lit Literal, reason ClauseRef) bool {
	switch s.litValue(lit) {
	case False:
		return false
	case True:
		return true
	}

	v := lit.VarID()
	s.assigns[lit] = True
	s.assigns[lit.Opposite()] = False
	s.varLevel[v] = int32(s.decisionLevel())
	s.reason[v] = reason
	s.trail = append(s.trail, lit)
	s.theory.NotifySetTrue(lit)
	return true
}

// undoOne un-assigns the top literal of the trail, applying the phase
// saving policy. watermark is the trail index at which the topmost
// (about-to-be-undone) decision level began; it is used by PhaseSavingTop
// to distinguish "the last decision level" from everything below it,
// exactly as MiniSat's phase_saving==1 does.
func (s *Solver) undoOne(watermark int) {
	idx := len(s.trail) - 1
	lit := s.trail[idx]
	v := lit.VarID()

	switch s.opts.PhaseSaving {
	case PhaseSavingAll:
		s.savedPolarity[v] = s.assigns[lit]
	case PhaseSavingTop:
		if idx >= watermark {
			s.savedPolarity[v] = s.assigns[lit]
		}
	}

	s.assigns[lit] = Unknown
	s.assigns[lit.Opposite()] = Unknown
	s.reason[v] = RefNone
	s.varLevel[v] = -1
	s.trail = s.trail[:idx]

	if s.decidable[v] {
		s.heap.insert(v, s.activity[v])
	}
}

// cancelUntil backtracks the trail to level. It is a no-op if already at or
// below level.
func (s *Solver) cancelUntil(level int) {
	if s.decisionLevel() <= level {
		return
	}

	watermark := s.trailLim[len(s.trailLim)-1]
	for s.decisionLevel() > level {
		lim := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > lim {
			s.undoOne(watermark)
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	if s.qhead > len(s.trail) {
		s.qhead = len(s.trail)
	}

	// cancelUntil itself does not notify the theory: the caller knows
	// whether it has a richer decision literal to report (the asserting
	// literal of a just-learnt clause) or only the plain backtrack, and
	// notifies accordingly (see solver.go).
}
