package sat

import "testing"

func TestPropagateUnitChain(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 3)
	a, b, c := PositiveLiteral(vs[0]), PositiveLiteral(vs[1]), PositiveLiteral(vs[2])

	s.AddClause([]Literal{a})
	s.AddClause([]Literal{a.Opposite(), b})
	s.AddClause([]Literal{b.Opposite(), c})

	if conflict := s.propagateAll(); conflict != RefNone {
		t.Fatalf("propagateAll() = %v, want RefNone", conflict)
	}
	if s.VarValue(vs[0]) != True || s.VarValue(vs[1]) != True || s.VarValue(vs[2]) != True {
		t.Errorf("chain not fully propagated: a=%v b=%v c=%v", s.VarValue(vs[0]), s.VarValue(vs[1]), s.VarValue(vs[2]))
	}
}

func TestAddClauseDetectsConflictingUnits(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 1)
	a := PositiveLiteral(vs[0])

	s.AddClause([]Literal{a})
	s.AddClause([]Literal{a.Opposite()})

	// The first unit puts a on the root trail; newClause then drops !a from
	// the second clause as false at the root, leaving it empty, so AddClause
	// marks the solver not-ok without any search.
	if s.IsOK() {
		t.Fatal("IsOK() = true after adding two conflicting unit clauses")
	}
}

func TestPropagateWatchSwapKeepsLongClauseSatisfiable(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 4)
	lits := make([]Literal, 4)
	for i, v := range vs {
		lits[i] = PositiveLiteral(v)
	}
	s.AddClause(lits)

	// Falsify the first two watched literals; the watcher must slide onto
	// one of the two remaining, unassigned tail literals rather than
	// reporting a spurious conflict or unit.
	s.AddClause([]Literal{lits[0].Opposite()})
	s.AddClause([]Literal{lits[1].Opposite()})

	if !s.IsOK() {
		t.Fatal("IsOK() = false after only falsifying two of four disjuncts")
	}
	if s.VarValue(vs[2]) != Unknown || s.VarValue(vs[3]) != Unknown {
		t.Error("watch swap should not have forced either remaining literal")
	}
}

func TestPropagateForcesLastLiteralWhenAllOthersFalse(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 3)
	a, b, c := PositiveLiteral(vs[0]), PositiveLiteral(vs[1]), PositiveLiteral(vs[2])
	s.AddClause([]Literal{a, b, c})

	s.AddClause([]Literal{a.Opposite()})
	s.AddClause([]Literal{b.Opposite()})

	if !s.IsOK() {
		t.Fatal("IsOK() = false unexpectedly")
	}
	if s.VarValue(vs[2]) != True {
		t.Errorf("VarValue(c) = %v, want True once a and b are both false", s.VarValue(vs[2]))
	}
}

func TestSetDecidableFalseThenTrueRejoinsHeap(t *testing.T) {
	th := &recordingTheory{}
	s := NewSolver(DefaultOptions, th)
	a := s.NewVar(PolarityUnset, true)
	b := s.NewVar(PolarityUnset, true)
	s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b)})

	s.SetDecidable(a, false)
	if s.VarValue(a) != Unknown {
		t.Fatal("a should still be unassigned")
	}
	s.SetDecidable(a, true)

	if got := s.Solve(false); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	// Solve backtracks to the root before returning, so look at the
	// assignments the search made rather than at the final trail.
	assigned := false
	for _, lit := range th.setTrue {
		if lit.VarID() == a {
			assigned = true
		}
	}
	if !assigned {
		t.Error("a was never assigned despite being re-admitted as decidable")
	}
}
