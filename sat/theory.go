package sat

// Theory is the narrow contract the core relies on to embed itself as one
// propagator inside a larger multi-theory solver. All methods run
// synchronously on the caller's goroutine — the core is single-threaded
// and never invokes Theory methods concurrently with itself.
type Theory interface {
	// Propagate runs any theory-level propagation triggered by the literals
	// the core has enqueued since the last call, returning a conflicting
	// clause or RefNone. The clause, if any, must already be attached to
	// the core's clause database (via Solver.AddLearnedClause) before it is
	// returned.
	Propagate(s *Solver) ClauseRef

	// GetExplanation returns the antecedent literals for lit, whose reason
	// is RefTheory (it was asserted through Solver.EnqueueTheoryFact), in
	// the same orientation Clause reasons use during analysis: the negation
	// of every literal that forced lit true. Called during analyze, when the
	// path counter has not yet reached the first UIP, and during
	// analyzeFinal when an assumption conflict set is traced through lit.
	// The returned slice is not retained past the call that consumes it.
	GetExplanation(s *Solver, lit Literal) []Literal

	// CheckFullAssignment is invoked once BCP is clean and every decision
	// variable is assigned. It may extend the trail with further theory
	// propagations; it returns RefNone if the assignment stands (SAT), or a
	// conflicting clause otherwise.
	CheckFullAssignment(s *Solver) ClauseRef

	// NotifyVarAdded is called after a new variable is created.
	NotifyVarAdded(v Var)

	// NotifyBecameDecidable is called when a variable becomes decidable:
	// by NewVar for a variable created decidable, and when a non-decidable
	// variable is promoted, whether by SetDecidable or by the decision-watch
	// invariant's automatic promotion.
	NotifyBecameDecidable(v Var)

	// NotifySetTrue is called immediately after lit is assigned true,
	// whether by a decision, unit propagation, or an assumption.
	NotifySetTrue(lit Literal)

	// NewDecisionLevel is called right before the core opens a new decision
	// level.
	NewDecisionLevel()

	// BacktrackDecisionLevel is called right after the core backtracks to
	// level, before decisionLit (if any; LitNone otherwise) is re-decided.
	BacktrackDecisionLevel(level int, decisionLit Literal)

	// NotifyClauseAdded is called after a clause (original or learnt) has
	// been attached to the clause database.
	NotifyClauseAdded(lits []Literal, learnt bool)

	// NotifyUnsat is called once when the core determines the formula is
	// unsatisfiable at the root level.
	NotifyUnsat()

	// ChangeBranchChoice may substitute a different variable for the one
	// the core's heuristic picked. Returning v unchanged declines to
	// substitute.
	ChangeBranchChoice(v Var) Var

	// TerminateRequested is polled at restart boundaries and search-loop
	// iterations; returning true makes Solve return Unknown promptly.
	TerminateRequested() bool
}

// NopTheory is a Theory that never propagates, never vetoes, and never
// terminates early — the default host for a bare SAT solver with no
// embedding theory.
type NopTheory struct{}

var _ Theory = NopTheory{}

func (NopTheory) Propagate(*Solver) ClauseRef                 { return RefNone }
func (NopTheory) GetExplanation(*Solver, Literal) []Literal    { return nil }
func (NopTheory) CheckFullAssignment(*Solver) ClauseRef        { return RefNone }
func (NopTheory) NotifyVarAdded(Var)                           {}
func (NopTheory) NotifyBecameDecidable(Var)                    {}
func (NopTheory) NotifySetTrue(Literal)                        {}
func (NopTheory) NewDecisionLevel()                            {}
func (NopTheory) BacktrackDecisionLevel(int, Literal)           {}
func (NopTheory) NotifyClauseAdded(lits []Literal, learnt bool) {}
func (NopTheory) NotifyUnsat()                                  {}
func (NopTheory) ChangeBranchChoice(v Var) Var                  { return v }
func (NopTheory) TerminateRequested() bool                      { return false }
