package sat

// abstractLevel returns a single bit summarizing level, used to cheaply
// reject minimization candidates whose reason clause could not possibly be
// covered by the current learnt clause's levels (grounded on MiniSat's
// abstractLevel trick).
func abstractLevel(level int32) uint32 {
	return 1 << (uint32(level) & 31)
}

// analyze performs first-UIP conflict analysis starting from the conflicting
// clause confl. It returns the learnt clause (with the asserting literal at
// index 0) and the level to backtrack to.
func (s *Solver) analyze(confl ClauseRef) ([]Literal, int) {
	s.inAnalyze = true
	defer func() { s.inAnalyze = false }()

	s.seen.clear()
	learnt := append(s.tmpLearnt[:0], LitNone)
	pathCount := 0
	p := LitNone
	idx := len(s.trail) - 1

	for {
		var lits []Literal
		if confl == RefTheory {
			// p's antecedent lives in the embedding theory: fetch it on
			// demand rather than dereferencing the arena.
			lits = s.theory.GetExplanation(s, p)
		} else {
			cd := s.arena.deref(confl)
			if cd.learnt() {
				s.bumpClauseActivity(confl)
			}
			lits = cd.lits
		}

		// A real clause's first literal is p itself once p is known; a
		// theory explanation never includes p, so it is always scanned in
		// full.
		start := 0
		if p != LitNone && confl != RefTheory {
			start = 1
		}
		for j := start; j < len(lits); j++ {
			q := lits[j]
			v := q.VarID()
			if s.seen.contains(v) || s.varLevel[v] == 0 {
				continue
			}
			s.bumpVarActivity(v)
			s.seen.add(v)
			if s.varLevel[v] >= int32(s.decisionLevel()) {
				pathCount++
			} else {
				learnt = append(learnt, q)
			}
		}

		for !s.seen.contains(s.trail[idx].VarID()) {
			idx--
		}
		p = s.trail[idx]
		confl = s.reason[p.VarID()]
		idx--
		pathCount--
		if pathCount <= 0 {
			break
		}
	}
	learnt[0] = p.Opposite()

	learnt = s.minimize(learnt)

	// Record the learnt clause's LBD (distinct decision levels among its
	// literals) in Stats. computeLBD reuses, and first clears, seen.
	lbd := s.computeLBD(learnt)
	s.Stats.LearntsLBD.add(float64(lbd))

	backtrackLevel := 0
	if len(learnt) > 1 {
		wl := 1
		maxLevel := s.varLevel[learnt[1].VarID()]
		for i := 2; i < len(learnt); i++ {
			if lvl := s.varLevel[learnt[i].VarID()]; lvl > maxLevel {
				maxLevel = lvl
				wl = i
			}
		}
		learnt[1], learnt[wl] = learnt[wl], learnt[1]
		backtrackLevel = int(maxLevel)
	}

	s.tmpLearnt = learnt
	return append([]Literal(nil), learnt...), backtrackLevel
}

// minimize returns learnt shrunk according to opts.CCMinMode. It reuses
// learnt's backing array, so the returned slice
// aliases the argument.
func (s *Solver) minimize(learnt []Literal) []Literal {
	if s.opts.CCMinMode == CCMinNone {
		return learnt
	}

	toClear := append(s.tmpReason[:0], learnt...)
	j := 1

	if s.opts.CCMinMode == CCMinBasic {
		for i := 1; i < len(learnt); i++ {
			v := learnt[i].VarID()
			cref := s.reason[v]
			redundant := false
			if cref != RefNone && cref != RefTheory {
				cd := s.arena.deref(cref)
				redundant = true
				for k := 1; k < len(cd.lits); k++ {
					if !s.seen.contains(cd.lits[k].VarID()) && s.varLevel[cd.lits[k].VarID()] != 0 {
						redundant = false
						break
					}
				}
			}
			if !redundant {
				learnt[j] = learnt[i]
				j++
			}
		}
	} else { // CCMinRecursive
		var abstractLevels uint32
		for _, l := range learnt[1:] {
			abstractLevels |= abstractLevel(s.varLevel[l.VarID()])
		}
		for i := 1; i < len(learnt); i++ {
			cref := s.reason[learnt[i].VarID()]
			if cref == RefNone || cref == RefTheory || !s.literalRedundant(learnt[i], abstractLevels, &toClear) {
				learnt[j] = learnt[i]
				j++
			}
		}
	}

	s.tmpReason = toClear[:0]
	return learnt[:j]
}

// literalRedundant reports whether lit's assignment is implied by other
// literals already in the learnt clause (or ones transitively implied by
// them), per MiniSat's recursive minimization. Every var it marks seen
// along the way is appended to *toClear so a failed attempt can be rolled
// back.
func (s *Solver) literalRedundant(lit Literal, abstractLevels uint32, toClear *[]Literal) bool {
	stack := []Literal{lit}
	top := len(*toClear)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cref := s.reason[cur.VarID()]
		cd := s.arena.deref(cref)
		for i := 1; i < len(cd.lits); i++ {
			q := cd.lits[i]
			v := q.VarID()
			if s.seen.contains(v) || s.varLevel[v] == 0 {
				continue
			}
			if s.reason[v] != RefNone && s.reason[v] != RefTheory && abstractLevel(s.varLevel[v])&abstractLevels != 0 {
				s.seen.add(v)
				stack = append(stack, q)
				*toClear = append(*toClear, q)
			} else {
				for _, x := range (*toClear)[top:] {
					s.seen.remove(x.VarID())
				}
				*toClear = (*toClear)[:top]
				return false
			}
		}
	}
	return true
}

// computeLBD returns the number of distinct decision levels represented in
// learnt's literals: the "literal block distance" used by modern reduceDB
// scoring to estimate how reusable a learnt clause is.
func (s *Solver) computeLBD(learnt []Literal) uint32 {
	s.seen.clear()
	var lbd uint32
	for _, l := range learnt {
		lvl := s.varLevel[l.VarID()]
		if !s.seen.contains(Var(lvl)) {
			s.seen.add(Var(lvl))
			lbd++
		}
	}
	return lbd
}

// analyzeFinal computes the minimal subset of assumptions responsible for
// p being forced false, per the assumption-based conflict extraction
// (analyzeFinal). p is the negation of the assumption that was found
// already-false when it was about to be decided.
func (s *Solver) analyzeFinal(p Literal) []Literal {
	out := []Literal{p}
	s.seen.clear()
	s.seen.add(p.VarID())

	for i := len(s.trail) - 1; i >= 0; i-- {
		lit := s.trail[i]
		v := lit.VarID()
		if !s.seen.contains(v) {
			continue
		}
		switch s.reason[v] {
		case RefNone:
			if s.varLevel[v] > 0 {
				out = append(out, lit.Opposite())
			}
		case RefTheory:
			for _, q := range s.theory.GetExplanation(s, lit) {
				w := q.VarID()
				if s.varLevel[w] > 0 {
					s.seen.add(w)
				}
			}
		default:
			cd := s.arena.deref(s.reason[v])
			for j := 1; j < len(cd.lits); j++ {
				w := cd.lits[j].VarID()
				if s.varLevel[w] > 0 {
					s.seen.add(w)
				}
			}
		}
		s.seen.remove(v)
	}
	return out
}
