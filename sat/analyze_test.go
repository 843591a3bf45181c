package sat

import "testing"

// TestSolveSetsVariableImpliedUnderEitherPolarity solves a formula in which
// a is implied whatever b is, and checks that the model sets a true.
func TestSolveSetsVariableImpliedUnderEitherPolarity(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 2)
	a, b := PositiveLiteral(vs[0]), PositiveLiteral(vs[1])

	// !a -> b, !a -> !b: if the solver decides a=false, propagation
	// conflicts at level 1 and analysis learns the unit (a), forcing a=true
	// at level 0.
	s.AddClause([]Literal{a, b})
	s.AddClause([]Literal{a, b.Opposite()})

	if got := s.Solve(false); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	if !s.Model[vs[0]] {
		t.Error("a must be true: it is implied regardless of b's value")
	}
}

func TestMinimizeCCMinNoneKeepsAllLiterals(t *testing.T) {
	opts := DefaultOptions
	opts.CCMinMode = CCMinNone
	s := NewSolver(opts, NopTheory{})
	learnt := []Literal{PositiveLiteral(1), NegativeLiteral(2), PositiveLiteral(3)}

	got := s.minimize(append([]Literal(nil), learnt...))
	if len(got) != len(learnt) {
		t.Errorf("minimize() with CCMinNone changed length: got %v, want %v", got, learnt)
	}
}

func TestAnalyzeFinalSingleAssumption(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 1)
	s.AddClause([]Literal{PositiveLiteral(vs[0])})

	s.SetAssumptions([]Literal{NegativeLiteral(vs[0])})
	if got := s.Solve(false); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}
	got := s.Conflict()
	want := []Literal{PositiveLiteral(vs[0])}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Conflict() = %v, want %v", got, want)
	}
}

func TestAnalyzeFinalMultipleAssumptionsOnlyBlamesRelevantOnes(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 3)
	a, b, c := vs[0], vs[1], vs[2]
	// a and b are unrelated to the conflict; only c is forced true by a unit
	// clause, so assuming !c should blame just !c, not a or b as well.
	s.AddClause([]Literal{PositiveLiteral(c)})

	s.SetAssumptions([]Literal{PositiveLiteral(a), PositiveLiteral(b), NegativeLiteral(c)})
	if got := s.Solve(false); got != False {
		t.Fatalf("Solve() = %v, want False", got)
	}

	conflict := s.Conflict()
	for _, lit := range conflict {
		if lit.VarID() == a || lit.VarID() == b {
			t.Errorf("Conflict() = %v includes an assumption unrelated to the actual conflict", conflict)
		}
	}
	if len(conflict) == 0 {
		t.Error("Conflict() is empty despite an UNSAT result under assumptions")
	}
}

func TestComputeLBDCountsDistinctLevels(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 3)
	for _, v := range vs {
		s.varLevel[v] = 0
	}
	s.varLevel[vs[0]] = 1
	s.varLevel[vs[1]] = 1
	s.varLevel[vs[2]] = 2
	s.seen.growTo(int(vs[2]) + 1)

	learnt := []Literal{PositiveLiteral(vs[0]), PositiveLiteral(vs[1]), PositiveLiteral(vs[2])}
	if got := s.computeLBD(learnt); got != 2 {
		t.Errorf("computeLBD() = %d, want 2 (levels {1,2})", got)
	}
}
