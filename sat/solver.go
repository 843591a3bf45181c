package sat

import (
	"fmt"
	"sort"
	"time"
)

// Solver is a CDCL SAT solver core, embeddable as one propagator inside a
// larger multi-theory solver via Theory. The zero value is not usable;
// construct with NewSolver.
type Solver struct {
	theory Theory
	opts   Options

	arena   *arena
	watches *watchLists
	heap    *varHeap

	// Per-variable state, indexed by Var.
	activity      []float64
	varLevel      []int32
	reason        []ClauseRef
	decidable     []bool
	userPolarity  []Polarity
	savedPolarity []LBool

	// Per-literal state, indexed by Literal (2 entries per variable).
	assigns []LBool

	seen resetSet

	// Trail state.
	trail    []Literal
	trailLim []int
	qhead    int

	// Clause database.
	constraints []ClauseRef
	learnts     []ClauseRef
	varInc      float64
	claInc      float64

	// Assumptions and the conflict set produced on UNSAT-under-assumptions.
	assumptions []Literal
	conflict    []Literal

	// Model, populated on SAT.
	Model []bool

	ok bool

	rng *lcg

	Stats Stats

	// Budgets. -1 disables a given budget.
	maxConflicts           int64
	maxPropagations        int64
	timeout                time.Duration
	startTime              time.Time
	conflictsAtSearchStart int64

	// Restart / reduceDB / learntsize scheduling.
	restartCount          int
	maxLearnts            float64
	learntsizeAdjustConfl float64
	learntsizeAdjustInc   float64
	learntsizeAdjustCnt   int
	customHeurFreq        float64

	// simplify() bookkeeping: only re-run when new root-level facts exist.
	simpDBAssigns int
	simpDBProps   int64

	// Assumption-scoped save/restore; nil unless a save is active.
	saved *savedState

	inAnalyze bool // reentrancy guard: AddLearnedClause must not be called from analyze

	// Reused scratch buffers to avoid reallocating on every conflict.
	tmpWatchers []watchEntry
	tmpLearnt   []Literal
	tmpReason   []Literal
}

type savedState struct {
	level       int
	qhead       int
	trail       []Literal
	trailLim    []int
	numClauses  int
	assumptions []Literal
}

// NewSolver returns a Solver with no variables or clauses, configured by
// opts, embedded under theory. Pass NopTheory{} for a bare SAT solver.
func NewSolver(opts Options, theory Theory) *Solver {
	s := &Solver{
		theory:          theory,
		opts:            opts,
		arena:           newArena(),
		watches:         newWatchLists(),
		heap:            newVarHeap(0),
		varInc:          1,
		claInc:          1,
		rng:             newLCG(opts.RandomSeed),
		ok:              true,
		maxConflicts:    opts.MaxConflicts,
		maxPropagations: opts.MaxPropagations,
		timeout:         opts.Timeout,
		customHeurFreq:  1,
		seen:            resetSet{stamp: 1},
		Stats: Stats{
			LearntsSize: newEMA(0.999),
			LearntsLBD:  newEMA(0.999),
		},
	}
	return s
}

// NewDefaultSolver returns a Solver configured with DefaultOptions and no
// embedding theory.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions, NopTheory{})
}

// NumVariables returns the number of variables created so far.
func (s *Solver) NumVariables() int {
	return len(s.decidable)
}

// NumAssigns returns the number of variables currently assigned.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumLearnts returns the number of learnt clauses currently kept.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// IsOK reports whether the solver has not yet proven the formula UNSAT at
// the root level.
func (s *Solver) IsOK() bool {
	return s.ok
}

// EnqueueTheoryFact asserts lit as true with an antecedent that lives in
// the embedding theory rather than the clause database. Call it
// from within Theory.Propagate to record a theory-level implication; its
// explanation is fetched from Theory.GetExplanation on demand, only if
// conflict analysis ever needs to resolve through it.
func (s *Solver) EnqueueTheoryFact(lit Literal) bool {
	return s.enqueue(lit, RefTheory)
}

// LitValue returns the current truth value of lit.
func (s *Solver) LitValue(lit Literal) LBool {
	return s.litValue(lit)
}

// VarValue returns the current truth value of v.
func (s *Solver) VarValue(v Var) LBool {
	return s.varValue(v)
}

// NewVar creates a fresh variable with the given user polarity preference
// and decision eligibility.
func (s *Solver) NewVar(polarity Polarity, decidable bool) Var {
	v := Var(len(s.decidable))

	s.watches.growTo(2 * (int(v) + 1))
	s.activity = append(s.activity, 0)
	if s.opts.RandInitAct {
		s.activity[v] = s.rng.Float64() * 0.00001
	}
	s.varLevel = append(s.varLevel, -1)
	s.reason = append(s.reason, RefNone)
	s.decidable = append(s.decidable, decidable)
	s.userPolarity = append(s.userPolarity, polarity)
	s.savedPolarity = append(s.savedPolarity, litFromPolarity(polarity))
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.seen.growTo(int(v) + 1)

	if int(v) >= s.heap.size {
		// The order heap has a fixed capacity: rebuild it with room to grow,
		// keeping every variable it already held.
		old := s.heap
		s.heap = newVarHeap(2 * (int(v) + 1))
		for u := Var(0); u < v; u++ {
			if old.contains(u) {
				s.heap.insert(u, s.activity[u])
			}
		}
	}
	if decidable {
		s.heap.insert(v, s.activity[v])
	}
	s.theory.NotifyVarAdded(v)
	if decidable {
		s.theory.NotifyBecameDecidable(v)
	}
	return v
}

func litFromPolarity(p Polarity) LBool {
	switch p {
	case PolarityTrue:
		return True
	case PolarityFalse:
		return False
	default:
		return False // arbitrary default phase when the caller expressed no preference
	}
}

// SetDecidable changes whether v may be branched on.
func (s *Solver) SetDecidable(v Var, decidable bool) {
	if s.decidable[v] == decidable {
		return
	}
	s.decidable[v] = decidable
	if decidable {
		s.theory.NotifyBecameDecidable(v)
		if s.varValue(v) == Unknown {
			s.heap.insert(v, s.activity[v])
		}
	}
}

// AddClause adds an original clause. It returns false if the formula is
// now known to be UNSAT (either it already was, or this clause made it
// so). Adding under a non-root decision level first backtracks to level 0;
// any pending root-level facts are then unit-propagated.
func (s *Solver) AddClause(lits []Literal) bool {
	if !s.ok {
		return false
	}
	if s.decisionLevel() != 0 {
		s.cancelUntilNotify(0, LitNone)
	}

	tmp := append([]Literal(nil), lits...)
	cref, ok := s.newClause(tmp, false)
	if !ok {
		s.ok = false
		s.theory.NotifyUnsat()
		return false
	}
	if cref != RefNone {
		s.constraints = append(s.constraints, cref)
	}
	if s.propagate() != RefNone {
		s.ok = false
		s.theory.NotifyUnsat()
		return false
	}
	return true
}

// AddLearnedClause attaches a clause produced by the host theory's own
// reasoning and returns its ref, so the caller can hand it straight back as
// the return value of Theory.Propagate or Theory.CheckFullAssignment: unlike
// AddClause, it never backtracks to root first, since a clause returned
// from those callbacks is meant to be analyzed against the trail exactly as
// it stood at the point of the call. This must only be called from a
// quiescent point — never while this core's own analyze is on the call
// stack.
func (s *Solver) AddLearnedClause(lits []Literal) (ClauseRef, bool) {
	if s.inAnalyze {
		panic("sat: AddLearnedClause called re-entrantly from analyze")
	}
	if !s.ok {
		return RefNone, false
	}

	tmp := append([]Literal(nil), lits...)
	cref, ok := s.newClause(tmp, true)
	if !ok {
		s.ok = false
		s.theory.NotifyUnsat()
		return RefNone, false
	}
	if cref != RefNone {
		s.learnts = append(s.learnts, cref)
	}
	return cref, true
}

// SetAssumptions records the assumptions to be decided first, one per
// decision level, before free branching.
func (s *Solver) SetAssumptions(lits []Literal) {
	s.assumptions = append([]Literal(nil), lits...)
}

// Conflict returns the minimal conflict set produced by the last UNSAT-
// under-assumptions Solve call.
func (s *Solver) Conflict() []Literal {
	return s.conflict
}

// CancelUntil backtracks to level.
func (s *Solver) CancelUntil(level int) {
	s.cancelUntilNotify(level, LitNone)
}

// cancelUntilNotify backtracks to level and then notifies the theory,
// passing decisionLit through when the caller has a richer one available
// (the asserting literal of a clause just learnt) or LitNone otherwise.
func (s *Solver) cancelUntilNotify(level int, decisionLit Literal) {
	s.cancelUntil(level)
	s.theory.BacktrackDecisionLevel(level, decisionLit)
}

func (s *Solver) shouldStop() bool {
	if s.maxConflicts >= 0 && s.Stats.Conflicts-s.conflictsAtSearchStart >= s.maxConflicts {
		return true
	}
	if s.maxPropagations >= 0 && s.Stats.Propagations >= s.maxPropagations {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	return s.theory.TerminateRequested()
}

// Solve runs the search driver. If nosearch is true, it only drains pending
// assumptions (propagating each one, opening a dummy decision level for an
// already-true assumption, and reporting a minimal conflict set via
// analyzeFinal for an already-false one) and never opens a free decision:
// it reports True as soon as the assumptions are exhausted, without
// committing to a full model.
func (s *Solver) Solve(nosearch bool) LBool {
	if !s.ok {
		return False
	}

	s.startTime = time.Now()
	s.conflictsAtSearchStart = s.Stats.Conflicts
	s.heap = newVarHeap(len(s.decidable))
	for v := Var(0); int(v) < len(s.decidable); v++ {
		if s.decidable[v] && s.varValue(v) == Unknown {
			s.heap.insert(v, s.activity[v])
		}
	}

	if s.maxLearnts == 0 {
		s.maxLearnts = float64(len(s.constraints)) * s.opts.LearntsizeFactor
		s.learntsizeAdjustConfl = 100
		s.learntsizeAdjustInc = 1.5
		s.learntsizeAdjustCnt = int(s.learntsizeAdjustConfl)
	}

	numConflictsPerRestart := s.opts.RestartFirst
	status := Unknown
	for status == Unknown {
		restartBound := restartBound(s.opts, s.restartCount, numConflictsPerRestart)
		status = s.search(restartBound, nosearch)
		s.restartCount++
		s.Stats.Restarts++

		if nosearch {
			return status
		}
		if s.shouldStop() {
			break
		}
	}

	s.cancelUntilNotify(0, LitNone)
	return status
}

func restartBound(opts Options, restartCount int, first int) int {
	if opts.LubyRestart {
		return int(luby(opts.RestartInc, restartCount)) * first
	}
	b := float64(first)
	for i := 0; i < restartCount; i++ {
		b *= opts.RestartInc
	}
	return int(b)
}

// handleRootConflict marks the solver UNSAT after a conflict is found at
// decision level 0.
func (s *Solver) handleRootConflict() {
	s.ok = false
	s.theory.NotifyUnsat()
}

// search runs the inner CDCL loop until more than conflictBound conflicts
// have occurred, then returns Unknown at the next decision for an outer
// restart. If nosearch is true, no
// free decision is ever opened: the loop only drains pending assumptions
// and reports True once they are exhausted.
func (s *Solver) search(conflictBound int, nosearch bool) LBool {
	conflictCount := 0

	for {
		if s.shouldStop() {
			return Unknown
		}

		if conflict := s.propagateAll(); conflict != RefNone {
			s.Stats.Conflicts++
			conflictCount++
			s.adjustLearntsize()
			if !s.learnFromConflict(conflict) {
				return False
			}
			continue
		}

		// No conflict.
		if s.decisionLevel() == 0 {
			s.simplify()
			if !s.ok {
				return False
			}
		}

		if float64(len(s.learnts))-float64(s.NumAssigns()) >= s.maxLearnts {
			s.reduceDB()
		}

		lit, done, result, hostConflict, retry := s.nextDecision(nosearch)
		if done {
			return result
		}
		if hostConflict != RefNone {
			s.Stats.Conflicts++
			conflictCount++
			s.adjustLearntsize()
			if !s.learnFromConflict(hostConflict) {
				return False
			}
			continue
		}
		if retry {
			continue
		}

		if conflictCount > conflictBound {
			s.cancelUntilNotify(0, LitNone)
			return Unknown
		}

		s.newDecisionLevel()
		s.enqueue(lit, RefNone)
		s.Stats.Decisions++
	}
}

// adjustLearntsize periodically grows the learnt-clause budget (mirrors
// MiniSat's learntsize_adjust_confl/_inc bookkeeping).
func (s *Solver) adjustLearntsize() {
	s.learntsizeAdjustCnt--
	if s.learntsizeAdjustCnt == 0 {
		s.learntsizeAdjustConfl *= s.learntsizeAdjustInc
		s.learntsizeAdjustCnt = int(s.learntsizeAdjustConfl)
		s.maxLearnts *= s.opts.LearntsizeInc
	}
}

// learnFromConflict runs first-UIP analysis on conflict, backjumps, and
// attaches the resulting clause. It returns false when the conflict is
// unresolvable (decision level 0), meaning the formula is UNSAT and the
// caller must return.
func (s *Solver) learnFromConflict(conflict ClauseRef) bool {
	if s.decisionLevel() == 0 {
		s.handleRootConflict()
		return false
	}

	learnt, backtrackLevel := s.analyze(conflict)
	s.cancelUntil(backtrackLevel)
	s.theory.BacktrackDecisionLevel(backtrackLevel, learnt[0])

	cref, ok := s.newClause(learnt, true)
	if !ok {
		s.handleRootConflict()
		return false
	}
	s.enqueue(learnt[0], cref)
	if cref != RefNone {
		s.learnts = append(s.learnts, cref)
		s.theory.NotifyClauseAdded(learnt, true)
		s.Stats.LearntsSize.add(float64(len(learnt)))
	}

	s.decayVarActivity()
	s.decayClauseActivity()
	return true
}

// nextDecision consumes the next pending assumption if any, otherwise asks
// the branching heuristic for one — unless nosearch is set, in which case
// it reports True as soon as the assumptions are exhausted rather than ever
// opening a free decision. done is true when the search has reached a
// terminal verdict (result holds it). hostConflict is non-RefNone when
// Theory.CheckFullAssignment vetoed an otherwise-complete assignment; the
// caller must feed it through the normal conflict-analysis path, since a
// veto can itself require backjumping past decisions already on the trail.
// retry is true when the host extended the trail from CheckFullAssignment
// without itself reporting a conflict: the caller must re-run propagation
// over those new facts before asking for a verdict again.
func (s *Solver) nextDecision(nosearch bool) (lit Literal, done bool, result LBool, hostConflict ClauseRef, retry bool) {
	for len(s.assumptions) > 0 {
		next := s.assumptions[0]
		s.assumptions = s.assumptions[1:]

		switch s.litValue(next) {
		case True:
			// Already forced; open a dummy decision level to keep the
			// assumption/decision-level correspondence and move on.
			s.newDecisionLevel()
			continue
		case False:
			s.conflict = s.analyzeFinal(next.Opposite())
			return LitNone, true, False, RefNone, false
		default:
			return next, false, Unknown, RefNone, false
		}
	}

	if nosearch {
		return LitNone, true, True, RefNone, false
	}

	branchVar, ok := s.pickBranchVar()
	if !ok {
		// Every decision variable is assigned: ask the host to verify.
		if cref := s.theory.CheckFullAssignment(s); cref != RefNone {
			return LitNone, false, Unknown, cref, false
		}
		if s.qhead != len(s.trail) {
			// The host enqueued new facts without itself flagging a
			// conflict: those facts may unlock further BCP or leave some
			// variable newly decidable, so the verdict isn't final yet.
			return LitNone, false, Unknown, RefNone, true
		}
		s.saveModel()
		return LitNone, true, True, RefNone, false
	}

	return s.polarizedLiteral(branchVar), false, Unknown, RefNone, false
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.varValue(Var(v))
		model[v] = lb == True
	}
	s.Model = model
}

// simplify removes root-satisfied clauses. It is only meaningful at
// decision level 0 and only does work if new root-level facts have
// appeared since the last call.
func (s *Solver) simplify() {
	if s.decisionLevel() != 0 {
		panic("sat: simplify called at non-root decision level")
	}
	if s.qhead != len(s.trail) {
		if conflict := s.propagateAll(); conflict != RefNone {
			s.handleRootConflict()
			return
		}
	}
	if len(s.trail) == s.simpDBAssigns || s.simpDBProps > 0 {
		return
	}

	// Satisfied-clause removal is disabled while a save is active: it would
	// shift s.constraints out from under the numClauses prefix that
	// ResetState relies on to truncate back to the saved point.
	if s.saved == nil {
		s.simplifyClauseSet(&s.learnts)
		s.simplifyClauseSet(&s.constraints)
		s.watches.cleanAll(s.arena)
	}

	s.simpDBAssigns = len(s.trail)
	s.simpDBProps = 0

	if s.arena.needsGC(s.opts.GarbageFrac) {
		s.garbageCollect()
	}
}

func (s *Solver) simplifyClauseSet(set *[]ClauseRef) {
	refs := *set
	j := 0
	for _, c := range refs {
		if s.simplifyClause(c) {
			s.detachClause(c)
			continue
		}
		refs[j] = c
		j++
	}
	*set = refs[:j]
}

// reduceDB thins the learnt clause database.
func (s *Solver) reduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	lim := s.claInc / float64(len(s.learnts))

	sort.Slice(s.learnts, func(i, j int) bool {
		ci, cj := s.arena.deref(s.learnts[i]), s.arena.deref(s.learnts[j])
		si, sj := len(ci.lits) > 2, len(cj.lits) > 2
		// Non-binary clauses sort first (ascending activity among
		// themselves); binaries sort last, where the unconditional
		// len(lits)<=2 keep-check protects them regardless of position.
		return si && (!sj || ci.activity < cj.activity)
	})

	half := len(s.learnts) / 2
	kept := s.learnts[:0]
	for i, c := range s.learnts {
		cd := s.arena.deref(c)
		keep := s.locked(c) || len(cd.lits) <= 2
		if i >= half {
			keep = keep || cd.activity >= lim
		}
		if keep {
			kept = append(kept, c)
		} else {
			s.detachClause(c)
		}
	}
	s.learnts = kept
	s.watches.cleanAll(s.arena)
}

// relocAll walks every clause-reference holder and rewrites its handles
// through relocMap. Entries mapped to RefNone (deleted clauses) are dropped
// from the clause-ref slices they appear in; watch-list entries for deleted
// clauses are dropped outright since a deleted clause is never watched.
func (s *Solver) relocAll(relocMap []ClauseRef) {
	for lit := range s.watches.lists {
		lst := s.watches.lists[lit]
		j := 0
		for _, e := range lst {
			nr := relocMap[e.clause]
			if nr == RefNone {
				continue
			}
			e.clause = nr
			lst[j] = e
			j++
		}
		s.watches.lists[lit] = lst[:j]
	}

	for v := range s.reason {
		if s.reason[v] != RefNone && s.reason[v] != RefTheory {
			s.reason[v] = relocMap[s.reason[v]]
		}
	}

	relocSet := func(set []ClauseRef) []ClauseRef {
		j := 0
		for _, c := range set {
			nr := relocMap[c]
			if nr == RefNone {
				continue
			}
			set[j] = nr
			j++
		}
		return set[:j]
	}
	s.constraints = relocSet(s.constraints)
	s.learnts = relocSet(s.learnts)
}

// garbageCollect performs the exclusive GC phase: it allocates a fresh
// arena, copies every surviving clause into it, and rewrites every
// reachable handle via relocAll.
func (s *Solver) garbageCollect() {
	newA := newArena()
	relocMap := make([]ClauseRef, len(s.arena.clauses))
	for old := range s.arena.clauses {
		relocMap[old] = RefNone
	}

	relocateSet := func(set []ClauseRef) {
		for _, c := range set {
			if relocMap[c] != RefNone {
				continue
			}
			cd := s.arena.deref(c)
			nr := newA.allocate(cd.lits, cd.learnt())
			ncd := newA.deref(nr)
			ncd.activity = cd.activity
			ncd.lbd = cd.lbd
			ncd.status = cd.status
			relocMap[c] = nr
		}
	}
	relocateSet(s.constraints)
	relocateSet(s.learnts)

	s.arena = newA
	s.relocAll(relocMap)
}

// SaveState captures enough of the current state to be restored later by
// ResetState, disabling satisfied-clause removal while active. Nested
// saves are not supported.
func (s *Solver) SaveState() {
	if s.saved != nil {
		panic("sat: nested SaveState is not supported")
	}
	s.saved = &savedState{
		level:       s.decisionLevel(),
		qhead:       s.qhead,
		trail:       append([]Literal(nil), s.trail...),
		trailLim:    append([]int(nil), s.trailLim...),
		numClauses:  len(s.constraints),
		assumptions: append([]Literal(nil), s.assumptions...),
	}
}

// ResetState restores the state captured by the last SaveState, discarding
// every clause (original or learnt) added since, and every learnt clause
// regardless of when it was added, since a learnt clause may encode facts
// that only hold under the assumptions being discarded.
func (s *Solver) ResetState() {
	if s.saved == nil {
		panic("sat: ResetState called without a prior SaveState")
	}
	saved := s.saved
	s.saved = nil

	// Cancel only down to the level SaveState captured, not to the root:
	// cancelUntil never touches the reason/level of a trail literal at or
	// below the target level, so everything saved.trail already contains
	// keeps its original (correct) reason and decision level. Only the
	// assumptions/decisions made since the save get unassigned.
	s.cancelUntilNotify(saved.level, LitNone)
	// Facts enqueued at saved.level after the save (root units added since,
	// for example) survive cancelUntil; unassign them as well.
	for len(s.trail) > len(saved.trail) {
		s.undoOne(len(saved.trail))
	}

	for _, c := range s.learnts {
		s.detachClause(c)
	}
	s.learnts = s.learnts[:0]

	for i := saved.numClauses; i < len(s.constraints); i++ {
		s.detachClause(s.constraints[i])
	}
	s.constraints = s.constraints[:saved.numClauses]
	s.watches.cleanAll(s.arena)

	s.ok = true
	s.assumptions = saved.assumptions

	// cancelUntil(saved.level) and the loop above already leave the trail and
	// trailLim exactly as they were at save time; this overwrite is only a defensive
	// re-assertion of that, mirroring the explicit copy MiniSat's own
	// resetState does even though cancelUntil already did the work.
	s.trail = append([]Literal(nil), saved.trail...)
	s.trailLim = append([]int(nil), saved.trailLim...)
	s.qhead = saved.qhead
}

// String implements fmt.Stringer for debugging.
func (s *Solver) String() string {
	return fmt.Sprintf("Solver{vars=%d constraints=%d learnts=%d}", s.NumVariables(), s.NumConstraints(), s.NumLearnts())
}
