package sat

// pickBranchVar selects the next variable to branch on. It returns ok=false
// only when every decidable variable is already assigned.
func (s *Solver) pickBranchVar() (Var, bool) {
	if s.opts.RandomVarFreq > 0 && s.rng.Float64() < s.opts.RandomVarFreq {
		if v, ok := s.randomDecidableVar(); ok {
			s.Stats.RandomDecisions++
			return v, true
		}
	}

	for {
		v, ok := s.heap.popTop()
		if !ok {
			return 0, false
		}
		if !s.decidable[v] || s.varValue(v) != Unknown {
			// Stale entry: the variable was assigned or demoted since it
			// was inserted. Drop it and keep looking.
			continue
		}

		if s.opts.CustomHeuristic {
			if s.customHeurFreq > s.opts.CustomHeurFreqFloor {
				s.customHeurFreq *= 0.99
				if s.customHeurFreq < s.opts.CustomHeurFreqFloor {
					s.customHeurFreq = s.opts.CustomHeurFreqFloor
				}
			}
			if s.rng.Float64() < s.customHeurFreq {
				chosen := s.theory.ChangeBranchChoice(v)
				if chosen != v {
					s.heap.insert(v, s.activity[v])
					if s.decidable[chosen] && s.varValue(chosen) == Unknown {
						return chosen, true
					}
					continue
				}
			}
		}
		return v, true
	}
}

// randomDecidableVar returns the first decidable, unassigned variable at or
// after a uniformly random starting index, wrapping around. yagh's public
// surface has no indexed access into the heap's internal array, so the scan
// runs over variable indices instead. The result is not uniform over the
// live candidates: a variable that follows a run of assigned or
// non-decidable ones is picked more often.
func (s *Solver) randomDecidableVar() (Var, bool) {
	n := s.NumVariables()
	if n == 0 {
		return 0, false
	}
	start := Var(s.rng.Intn(n))
	v := start
	for {
		if s.decidable[v] && s.varValue(v) == Unknown {
			return v, true
		}
		v++
		if int(v) == n {
			v = 0
		}
		if v == start {
			return 0, false
		}
	}
}

// polarizedLiteral resolves v's decision polarity: an explicit user
// preference wins; failing that, if RndPol is set the polarity is chosen
// uniformly at random; failing that, the last saved phase is used.
func (s *Solver) polarizedLiteral(v Var) Literal {
	switch s.userPolarity[v] {
	case PolarityTrue:
		return PositiveLiteral(v)
	case PolarityFalse:
		return NegativeLiteral(v)
	}
	if s.opts.RndPol {
		if s.rng.Float64() < 0.5 {
			return NegativeLiteral(v)
		}
		return PositiveLiteral(v)
	}
	if s.savedPolarity[v] == True {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}
